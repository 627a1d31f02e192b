package media

import (
	"strings"
	"testing"

	"github.com/streamhive/videos-ms-go/internal/model"
)

func TestThumbnailArgs(t *testing.T) {
	args := thumbnailArgs("/tmp/in.mp4", "/tmp/thumbnail.jpg", 30)

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-ss 3.000") {
		t.Errorf("expected seek at 10%% of duration, got %q", joined)
	}
	if !strings.Contains(joined, "scale=1280:720") {
		t.Errorf("expected fixed 1280x720 output, got %q", joined)
	}
	if !strings.Contains(joined, "-frames:v 1") {
		t.Errorf("expected a single frame, got %q", joined)
	}
	if args[len(args)-1] != "/tmp/thumbnail.jpg" {
		t.Errorf("expected output path last, got %q", args[len(args)-1])
	}
}

func TestTranscodeArgs(t *testing.T) {
	p := model.QualityProfile{Name: "720p", Width: 1280, Height: 720, BitrateKbs: 2500}
	args := transcodeArgs("/tmp/in.mp4", "/tmp/720p.mp4", p)

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"scale=1280:720",
		"-c:v libx264",
		"-b:v 2500k",
		"-c:a aac",
		"-f mp4",
		"-progress pipe:1",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %q", want, joined)
		}
	}
}

func TestScanProgress(t *testing.T) {
	stream := strings.Join([]string{
		"frame=100",
		"out_time_us=5000000",
		"progress=continue",
		"out_time_us=15000000",
		"progress=continue",
		"out_time_us=30000000",
		"progress=end",
	}, "\n")

	var got []float64
	scanProgress(strings.NewReader(stream), 30, func(p float64) {
		got = append(got, p)
	})

	want := []float64{16.666666666666664, 50, 100}
	if len(got) != len(want) {
		t.Fatalf("got %d callbacks, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if diff := got[i] - want[i]; diff > 0.01 || diff < -0.01 {
			t.Errorf("callback %d = %v; want ≈%v", i, got[i], want[i])
		}
	}
}

func TestScanProgress_ClampsAbove100(t *testing.T) {
	var got []float64
	scanProgress(strings.NewReader("out_time_us=99000000\n"), 30, func(p float64) {
		got = append(got, p)
	})

	if len(got) != 1 || got[0] != 100 {
		t.Fatalf("expected single clamped callback at 100, got %v", got)
	}
}

func TestScanProgress_NilCallback(t *testing.T) {
	// must drain the reader without panicking
	scanProgress(strings.NewReader("out_time_us=1000000\n"), 30, nil)
}

func TestLastStderrLine(t *testing.T) {
	in := "frame=1\nframe=2\n/tmp/in.mp4: Invalid data found when processing input\n\n"
	if got := lastStderrLine(in); got != "/tmp/in.mp4: Invalid data found when processing input" {
		t.Errorf("lastStderrLine = %q", got)
	}
	if got := lastStderrLine("  \n "); got != "unknown error" {
		t.Errorf("lastStderrLine on blank = %q", got)
	}
}
