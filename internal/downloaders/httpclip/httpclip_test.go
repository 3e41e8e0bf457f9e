package httpclip

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clipzo/clipzo/internal/timerange"
	"github.com/clipzo/clipzo/internal/utils"
)

func newTestJob(url, start, end string) *utils.ClipJob {
	job := &utils.ClipJob{JobType: "httpclip", URL: url, Metadata: make(map[string]any)}
	if start != "" {
		job.Metadata["startTime"] = start
	}
	if end != "" {
		job.Metadata["endTime"] = end
	}
	return job
}

func TestValidateJob(t *testing.T) {
	d := &HTTPClipDownloader{}

	t.Run("Valid", func(t *testing.T) {
		job := newTestJob("https://example.com/match.mp4", "00:00:10", "00:01:00")
		if err := d.ValidateJob(job); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("BadScheme", func(t *testing.T) {
		job := newTestJob("ftp://example.com/match.mp4", "00:00:10", "00:01:00")
		if err := d.ValidateJob(job); err == nil {
			t.Error("expected error for ftp scheme")
		}
	})

	t.Run("MissingRange", func(t *testing.T) {
		job := newTestJob("https://example.com/match.mp4", "", "")
		if !errors.Is(d.ValidateJob(job), timerange.ErrMissingParameter) {
			t.Error("expected ErrMissingParameter")
		}
	})
}

func TestBuildJobHonorsTempDir(t *testing.T) {
	dir := t.TempDir()
	fakeFFmpeg := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(fakeFFmpeg, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	job := newTestJob("https://example.com/match.mp4", "00:00:10", "00:01:00")
	job.OutputPath = filepath.Join(dir, "match_clip.mp4")
	job.Metadata["ffmpegPathOverride"] = fakeFFmpeg
	job.Metadata["tempDir"] = ".scratch"

	d := &HTTPClipDownloader{}
	if err := d.BuildJob(job); err != nil {
		t.Fatalf("BuildJob failed: %v", err)
	}
	tempFile := job.Metadata["tempFile"].(string)
	if !strings.Contains(tempFile, ".scratch") {
		t.Errorf("tempFile = %q; want path under .scratch", tempFile)
	}
}

func TestDownloadRemovesTempFileOnCutFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not really media"))
	}))
	defer server.Close()

	dir := t.TempDir()
	tempFile := filepath.Join(dir, ".clipzo-temp", "clip_test_source.mp4")
	job := newTestJob(server.URL+"/match.mp4", "00:00:10", "00:01:00")
	job.OutputPath = filepath.Join(dir, "match_clip.mp4")
	job.Ranges = []timerange.TimeRange{{Start: 10, End: 60}}
	job.Metadata["tempFile"] = tempFile
	job.Metadata["ffmpegPath"] = filepath.Join(dir, "no-such-ffmpeg")

	d := &HTTPClipDownloader{}
	if err := d.Download(job); err == nil {
		t.Fatal("expected error from failing cut")
	}
	if _, err := os.Stat(tempFile); !os.IsNotExist(err) {
		t.Errorf("temp source file left behind after failed cut: %v", err)
	}
}

func TestOutputNameFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"MediaFile", "https://example.com/videos/match.mp4", "match_clip.mp4"},
		{"NestedPath", "https://cdn.example.com/a/b/game.mkv", "game_clip.mkv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputNameFromURL(tt.url); got != tt.want {
				t.Errorf("outputNameFromURL(%s) = %s; want %s", tt.url, got, tt.want)
			}
		})
	}

	t.Run("BareHost", func(t *testing.T) {
		got := outputNameFromURL("https://example.com/")
		if !strings.HasPrefix(got, "clip_") || !strings.HasSuffix(got, ".mp4") {
			t.Errorf("outputNameFromURL fallback = %s", got)
		}
	})
}
