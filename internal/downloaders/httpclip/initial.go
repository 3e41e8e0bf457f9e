package httpclip

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clipzo/clipzo/internal/ffcut"
	"github.com/clipzo/clipzo/internal/timerange"
	"github.com/clipzo/clipzo/internal/utils"
)

type HTTPClipDownloader struct{}

func (d *HTTPClipDownloader) ValidateJob(job *utils.ClipJob) error {
	parsedURL, err := url.Parse(job.URL)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s", parsedURL.Scheme)
	}
	if _, err := timerange.FromParams(job.RangeParams()); err != nil {
		return err
	}
	return nil
}

func (d *HTTPClipDownloader) BuildJob(job *utils.ClipJob) error {
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

	if job.OutputPath == "" {
		job.OutputPath = outputNameFromURL(job.URL)
	}
	if _, err := os.Stat(job.OutputPath); err == nil {
		job.OutputPath = utils.RenewOutputPath(job.OutputPath)
	}
	ffmpegOverride, _ := job.Metadata["ffmpegPathOverride"].(string)
	ffmpegPath, err := ffcut.EnsureFFmpeg(ffmpegOverride)
	if err != nil {
		return fmt.Errorf("error ensuring ffmpeg: %v", err)
	}
	job.Metadata["ffmpegPath"] = ffmpegPath
	tempDir := filepath.Join(filepath.Dir(job.OutputPath), job.TempDir())
	job.Metadata["tempFile"] = filepath.Join(tempDir, fmt.Sprintf("clip_%s_source%s", time.Now().Format("20060102150405"), filepath.Ext(job.OutputPath)))
	return nil
}

func outputNameFromURL(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Path == "" || parsedURL.Path == "/" {
		return fmt.Sprintf("clip_%s.mp4", time.Now().Format("2006-01-02_15-04"))
	}
	base := filepath.Base(parsedURL.Path)
	if base == "" || !strings.Contains(base, ".") {
		return fmt.Sprintf("clip_%s.mp4", time.Now().Format("2006-01-02_15-04"))
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_clip" + ext
}
