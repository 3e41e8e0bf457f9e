package ytclip

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/clipzo/clipzo/internal/hook"
	"github.com/clipzo/clipzo/internal/timerange"
	"github.com/clipzo/clipzo/internal/utils"
)

func newTestJob(start, end string) *utils.ClipJob {
	job := &utils.ClipJob{
		JobType:  "ytclip",
		URL:      "https://www.youtube.com/watch?v=abc123",
		Metadata: make(map[string]any),
	}
	if start != "" {
		job.Metadata["startTime"] = start
	}
	if end != "" {
		job.Metadata["endTime"] = end
	}
	return job
}

func TestValidateJob(t *testing.T) {
	d := &YTClipDownloader{}

	t.Run("Valid", func(t *testing.T) {
		if err := d.ValidateJob(newTestJob("00:00:10", "00:01:00")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("MissingRange", func(t *testing.T) {
		err := d.ValidateJob(newTestJob("", ""))
		if !errors.Is(err, timerange.ErrMissingParameter) {
			t.Errorf("error = %v; want ErrMissingParameter", err)
		}
	})

	t.Run("MissingEnd", func(t *testing.T) {
		err := d.ValidateJob(newTestJob("00:00:10", ""))
		if !errors.Is(err, timerange.ErrMissingParameter) {
			t.Errorf("error = %v; want ErrMissingParameter", err)
		}
	})

	t.Run("BadTimecode", func(t *testing.T) {
		err := d.ValidateJob(newTestJob("bad:input", "00:01:00"))
		var formatErr *timerange.FormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("error = %v; want FormatError", err)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		job := newTestJob("00:00:10", "00:01:00")
		job.Metadata["format"] = "imaginary"
		if err := d.ValidateJob(job); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestBuildJobComputesRange(t *testing.T) {
	// Build resolves external binaries too, so only exercise the range part
	// through validation plus FromParams here.
	ranges, err := timerange.FromParams(newTestJob("00:00:10", "00:01:00").RangeParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 1 || ranges[0].Start != 10 || ranges[0].End != 60 {
		t.Errorf("ranges = %+v; want [{10 60}]", ranges)
	}
}

func TestBuildRangeArgs(t *testing.T) {
	args := BuildRangeArgs([]timerange.TimeRange{{Start: 10, End: 60}})
	want := []string{"--download-sections", "*10-60"}
	if !slices.Equal(args, want) {
		t.Errorf("BuildRangeArgs = %v; want %v", args, want)
	}
}

func TestParseProgressLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   hook.Event
		wantOk bool
	}{
		{"Finished", "clipzo-progress|finished|out.mp4", hook.Event{Status: "finished", Filename: "out.mp4"}, true},
		{"Downloading", "clipzo-progress|downloading|out.mp4.part", hook.Event{Status: "downloading", Filename: "out.mp4.part"}, true},
		{"PipeInFilename", "clipzo-progress|finished|we|rd.mp4", hook.Event{Status: "finished", Filename: "we|rd.mp4"}, true},
		{"PlainLine", "[download]  42.0% of 10.00MiB", hook.Event{}, false},
		{"MarkerOnly", "clipzo-progress|", hook.Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseProgressLine(tt.line)
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("ParseProgressLine(%q) = (%+v, %v); want (%+v, %v)", tt.line, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestDownloadCapturesFinalFinishedEvent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a shell stub")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "yt-dlp")
	script := "#!/bin/sh\n" +
		"echo '[download] Destination: clip.f137.mp4'\n" +
		"echo 'clipzo-progress|downloading|clip.f137.mp4'\n" +
		"echo 'clipzo-progress|finished|clip.mp4'\n"
	if err := os.WriteFile(stub, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	job := newTestJob("00:00:10", "00:01:00")
	job.OutputPath = filepath.Join(dir, "clip.mp4")
	job.Ranges = []timerange.TimeRange{{Start: 10, End: 60}}
	job.Recorder = hook.NewRecorder()
	job.Metadata["ytdlpPath"] = stub
	job.Metadata["ytdlpFormat"] = "bestvideo+bestaudio/best"
	job.Metadata["ffmpegPath"] = "ffmpeg"

	d := &YTClipDownloader{}
	if err := d.Download(job); err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	path, ok := job.Recorder.Path()
	if !ok || path != "clip.mp4" {
		t.Errorf("recorder path = (%q, %v); want (clip.mp4, true)", path, ok)
	}
}

func TestProgressLineDrivesRecorder(t *testing.T) {
	recorder := hook.NewRecorder()
	for _, line := range []string{
		"[download] Destination: clip.f137.mp4",
		"clipzo-progress|downloading|clip.f137.mp4",
		"clipzo-progress|finished|clip.mp4",
	} {
		if event, ok := ParseProgressLine(line); ok {
			recorder.HandleEvent(event)
		}
	}
	path, ok := recorder.Path()
	if !ok || path != "clip.mp4" {
		t.Errorf("recorder path = (%q, %v); want (clip.mp4, true)", path, ok)
	}
}
