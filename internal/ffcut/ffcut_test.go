package ffcut

import (
	"slices"
	"testing"

	"github.com/clipzo/clipzo/internal/timerange"
)

func TestBuildArgsCopy(t *testing.T) {
	c := New("ffmpeg")
	args := c.BuildArgs("in.mp4", "out.mp4", timerange.TimeRange{Start: 10, End: 60})
	want := []string{"-y", "-ss", "00:00:10", "-to", "00:01:00", "-i", "in.mp4", "-c", "copy", "out.mp4"}
	if !slices.Equal(args, want) {
		t.Errorf("BuildArgs = %v; want %v", args, want)
	}
}

func TestBuildArgsReencode(t *testing.T) {
	c := New("ffmpeg")
	c.Reencode = true
	args := c.BuildArgs("in.webm", "out.mp4", timerange.TimeRange{Start: 0, End: 5})
	if !slices.Contains(args, "libx264") || !slices.Contains(args, "aac") {
		t.Errorf("BuildArgs missing re-encode codecs: %v", args)
	}
	if slices.Contains(args, "copy") {
		t.Errorf("BuildArgs should not stream-copy when re-encoding: %v", args)
	}
}

func TestCutRejectsInvertedRange(t *testing.T) {
	c := New("ffmpeg")
	err := c.Cut("in.mp4", "out.mp4", timerange.TimeRange{Start: 60, End: 10}, nil)
	if err == nil {
		t.Fatal("expected error for inverted range")
	}
}
