package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseHeaderArgs(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    map[string]string
	}{
		{"Empty", nil, map[string]string{}},
		{"Single", []string{"Authorization: Bearer abc"}, map[string]string{"Authorization": "Bearer abc"}},
		{"ColonInValue", []string{"Referer: https://example.com/a"}, map[string]string{"Referer": "https://example.com/a"}},
		{"Malformed", []string{"no-colon-here"}, map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHeaderArgs(tt.headers)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseHeaderArgs(%v) = %v; want %v", tt.headers, got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("header %s = %q; want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.bytes); got != tt.want {
			t.Errorf("FormatBytes(%d) = %s; want %s", tt.bytes, got, tt.want)
		}
	}
}

func TestJobTempDir(t *testing.T) {
	job := &ClipJob{Metadata: make(map[string]any)}
	if job.TempDir() != TempDirName {
		t.Errorf("TempDir() = %q; want default %q", job.TempDir(), TempDirName)
	}
	job.Metadata["tempDir"] = ".scratch"
	if job.TempDir() != ".scratch" {
		t.Errorf("TempDir() = %q; want .scratch", job.TempDir())
	}
}

func TestRenewOutputPath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	renewed := RenewOutputPath(existing)
	if renewed != filepath.Join(dir, "clip-(1).mp4") {
		t.Errorf("RenewOutputPath = %s", renewed)
	}
	if err := os.WriteFile(renewed, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if again := RenewOutputPath(existing); again != filepath.Join(dir, "clip-(2).mp4") {
		t.Errorf("RenewOutputPath second = %s", again)
	}
}
