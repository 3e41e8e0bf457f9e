package ytclip

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/clipzo/clipzo/internal/ffcut"
	"github.com/clipzo/clipzo/internal/timerange"
	"github.com/clipzo/clipzo/internal/utils"
)

type YTClipDownloader struct{}

var ytdlpFormats = map[string]string{
	"best":     "bestvideo+bestaudio/best",
	"best60":   "bestvideo[fps<=60]+bestaudio/best",
	"bestmp4":  "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"decent":   "bestvideo[height<=1080]+bestaudio/best",
	"decent60": "bestvideo[height<=1080][fps<=60]+bestaudio/best",
	"cheap":    "bestvideo[height<=720]+bestaudio/best",
	"1080p":    "bestvideo[height=1080][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"720p":     "bestvideo[height=720][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"480p":     "bestvideo[height=480][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"audio":    "bestaudio[ext=m4a]/bestaudio",
}

func (d *YTClipDownloader) ValidateJob(job *utils.ClipJob) error {
	if _, err := timerange.FromParams(job.RangeParams()); err != nil {
		return err
	}
	if format, ok := job.Metadata["format"].(string); ok {
		if _, exists := ytdlpFormats[format]; !exists {
			return fmt.Errorf("unsupported format: %s", format)
		}
	}
	if job.URL == "" {
		return fmt.Errorf("no media URL provided")
	}
	return nil
}

func (d *YTClipDownloader) BuildJob(job *utils.ClipJob) error {
	ranges, err := timerange.FromParams(job.RangeParams())
	if err != nil {
		return err
	}
	for _, r := range ranges {
		if r.End <= r.Start {
			return fmt.Errorf("invalid range %s: end must be greater than start", r)
		}
	}
	job.Ranges = ranges

	format, ok := job.Metadata["format"].(string)
	if !ok || format == "" {
		format = "best"
		job.Metadata["format"] = format
	}
	job.Metadata["ytdlpFormat"] = ytdlpFormats[format]
	ytdlpPath, err := EnsureYtdlp(job)
	if err != nil {
		return fmt.Errorf("error ensuring yt-dlp: %v", err)
	}
	job.Metadata["ytdlpPath"] = ytdlpPath

	ffmpegOverride, _ := job.Metadata["ffmpegPathOverride"].(string)
	ffmpegPath, err := ffcut.EnsureFFmpeg(ffmpegOverride)
	if err != nil {
		return fmt.Errorf("error ensuring ffmpeg: %v", err)
	}
	job.Metadata["ffmpegPath"] = ffmpegPath

	if job.OutputPath == "" {
		job.OutputPath = "%(title)s.%(ext)s"
	}
	return nil
}

// EnsureYtdlp locates yt-dlp in PATH or alongside the executable, fetching the
// release binary as a last resort. A path override from the environment wins.
func EnsureYtdlp(job *utils.ClipJob) (string, error) {
	if override, ok := job.Metadata["ytdlpPathOverride"].(string); ok && override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("configured yt-dlp path not usable: %v", err)
		}
		return override, nil
	}
	path, err := exec.LookPath("yt-dlp")
	if err == nil {
		return path, nil
	}
	execDir, err := os.Executable()
	if err == nil {
		ytdlpPath := filepath.Join(filepath.Dir(execDir), "yt-dlp")
		if runtime.GOOS == "windows" {
			ytdlpPath += ".exe"
		}
		if _, err := os.Stat(ytdlpPath); err == nil {
			return ytdlpPath, nil
		}
	}
	return downloadYtdlp(job.TempDir(), job.HTTPClientConfig)
}

// BuildRangeArgs renders ranges into yt-dlp --download-sections values.
func BuildRangeArgs(ranges []timerange.TimeRange) []string {
	var args []string
	for _, r := range ranges {
		args = append(args, "--download-sections", fmt.Sprintf("*%d-%d", r.Start, r.End))
	}
	return args
}
