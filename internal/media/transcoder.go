package media

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/streamhive/videos-ms-go/internal/model"
	"github.com/streamhive/videos-ms-go/internal/port"
)

const (
	thumbnailWidth  = 1280
	thumbnailHeight = 720
	// thumbnailOffset is the fraction of the video's duration at which the
	// thumbnail frame is captured.
	thumbnailOffset = 0.10
)

// FFmpeg shells out to the ffmpeg binary for thumbnails and renditions.
// Cancellation kills the child process via exec.CommandContext.
type FFmpeg struct {
	bin string
}

// compile-time check: *FFmpeg must satisfy port.Transcoder
var _ port.Transcoder = (*FFmpeg)(nil)

func NewFFmpeg(bin string) *FFmpeg {
	return &FFmpeg{bin: bin}
}

func (f *FFmpeg) Thumbnail(ctx context.Context, src, outDir string, durationSeconds float64) (string, error) {
	out := filepath.Join(outDir, "thumbnail.jpg")

	cmd := exec.CommandContext(ctx, f.bin, thumbnailArgs(src, out, durationSeconds)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("ffmpeg thumbnail failed: %s", lastStderrLine(stderr.String()))
		}
		return "", fmt.Errorf("running ffmpeg: %w", err)
	}
	return out, nil
}

func (f *FFmpeg) Transcode(ctx context.Context, src, outDir string, profile model.QualityProfile, durationSeconds float64, onProgress port.ProgressFunc) (string, error) {
	out := filepath.Join(outDir, profile.Name+".mp4")

	cmd := exec.CommandContext(ctx, f.bin, transcodeArgs(src, out, profile)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("attaching ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("running ffmpeg: %w", err)
	}

	scanProgress(stdout, durationSeconds, onProgress)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("ffmpeg %s encode failed: %s", profile.Name, lastStderrLine(stderr.String()))
		}
		return "", fmt.Errorf("running ffmpeg: %w", err)
	}
	return out, nil
}

func thumbnailArgs(src, out string, durationSeconds float64) []string {
	seek := durationSeconds * thumbnailOffset
	return []string{
		"-y",
		"-ss", strconv.FormatFloat(seek, 'f', 3, 64),
		"-i", src,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale=%d:%d", thumbnailWidth, thumbnailHeight),
		"-q:v", "2",
		out,
	}
}

func transcodeArgs(src, out string, profile model.QualityProfile) []string {
	return []string{
		"-y",
		"-i", src,
		// resize to the exact target dimensions, matching the published
		// profile even when the source aspect differs
		"-vf", fmt.Sprintf("scale=%d:%d", profile.Width, profile.Height),
		"-c:v", "libx264",
		"-b:v", profile.BitrateArg(),
		"-c:a", "aac",
		"-f", "mp4",
		"-progress", "pipe:1",
		"-nostats",
		out,
	}
}

// scanProgress reads ffmpeg's -progress key=value stream and converts
// out_time_us ticks into percent-complete callbacks.
func scanProgress(r io.Reader, durationSeconds float64, onProgress port.ProgressFunc) {
	if onProgress == nil || durationSeconds <= 0 {
		_, _ = io.Copy(io.Discard, r)
		return
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		val, ok := strings.CutPrefix(line, "out_time_us=")
		if !ok {
			continue
		}
		us, err := strconv.ParseInt(val, 10, 64)
		if err != nil || us < 0 {
			continue
		}
		percent := float64(us) / 1e6 / durationSeconds * 100
		if percent > 100 {
			percent = 100
		}
		onProgress(percent)
	}
}

func lastStderrLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return "unknown error"
}
