package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/streamhive/videos-ms-go/internal/model"
	"github.com/streamhive/videos-ms-go/internal/port"
)

// FFprobe probes local video files with the ffprobe binary.
type FFprobe struct {
	bin string
}

// compile-time check: *FFprobe must satisfy port.Prober
var _ port.Prober = (*FFprobe)(nil)

func NewFFprobe(bin string) *FFprobe {
	return &FFprobe{bin: bin}
}

type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		BitRate    string `json:"bit_rate"`
	} `json:"format"`
}

func (p *FFprobe) Probe(ctx context.Context, path string) (model.Metadata, error) {
	cmd := exec.CommandContext(ctx, p.bin,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return model.Metadata{}, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// ffprobe itself rejected the input
			return model.Metadata{}, fmt.Errorf("%w: %s", ErrUnreadableSource, strings.TrimSpace(stderr.String()))
		}
		// the tool could not be started at all; worth a retry
		return model.Metadata{}, fmt.Errorf("running ffprobe: %w", err)
	}

	return parseProbeOutput(stdout.Bytes())
}

func parseProbeOutput(raw []byte) (model.Metadata, error) {
	var out probeOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.Metadata{}, fmt.Errorf("parsing ffprobe output: %w", err)
	}

	md := model.Metadata{Format: out.Format.FormatName}
	if out.Format.Duration != "" {
		d, err := strconv.ParseFloat(out.Format.Duration, 64)
		if err != nil {
			return model.Metadata{}, fmt.Errorf("parsing duration %q: %w", out.Format.Duration, err)
		}
		md.DurationSeconds = d
	}
	if out.Format.BitRate != "" {
		b, err := strconv.ParseInt(out.Format.BitRate, 10, 64)
		if err != nil {
			return model.Metadata{}, fmt.Errorf("parsing bit_rate %q: %w", out.Format.BitRate, err)
		}
		md.BitrateBps = b
	}

	for _, s := range out.Streams {
		if s.CodecType == "video" {
			md.Width = s.Width
			md.Height = s.Height
			break
		}
	}
	if md.Width == 0 || md.Height == 0 {
		return model.Metadata{}, fmt.Errorf("%w: no video stream found", ErrUnreadableSource)
	}

	return md, nil
}
