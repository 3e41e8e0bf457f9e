package httpclip

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/clipzo/clipzo/internal/ffcut"
	"github.com/clipzo/clipzo/internal/hook"
	"github.com/clipzo/clipzo/internal/utils"
	"github.com/rs/zerolog/log"
)

func (d *HTTPClipDownloader) Download(job *utils.ClipJob) error {
	tempFile := job.Metadata["tempFile"].(string)
	ffmpegPath := job.Metadata["ffmpegPath"].(string)
	if err := os.MkdirAll(filepath.Dir(tempFile), 0755); err != nil {
		return fmt.Errorf("error creating temp directory: %v", err)
	}
	defer os.Remove(tempFile)
	if err := d.fetchSource(job, tempFile); err != nil {
		return err
	}

	cutter := ffcut.New(ffmpegPath)
	if err := cutter.Cut(tempFile, job.OutputPath, job.Ranges[0], job.StreamFunc); err != nil {
		return err
	}
	if job.Recorder != nil {
		job.Recorder.HandleEvent(hook.Event{Status: hook.StatusFinished, Filename: job.OutputPath})
	}
	return nil
}

func (d *HTTPClipDownloader) fetchSource(job *utils.ClipJob, tempFile string) error {
	client := utils.NewClipzoHTTPClient(job.HTTPClientConfig)
	req, err := http.NewRequest("GET", job.URL, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error fetching source: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status code %d", resp.StatusCode)
	}
	totalSize := int64(-1)
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if parsed, err := strconv.ParseInt(cl, 10, 64); err == nil {
			totalSize = parsed
		}
	}
	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("error creating temp file: %v", err)
	}
	defer out.Close()

	buffer := make([]byte, utils.DefaultBufferSize)
	var downloaded int64
	for {
		n, err := resp.Body.Read(buffer)
		if n > 0 {
			if _, writeErr := out.Write(buffer[:n]); writeErr != nil {
				return fmt.Errorf("error writing temp file: %v", writeErr)
			}
			downloaded += int64(n)
			if job.ProgressFunc != nil {
				job.ProgressFunc(downloaded, totalSize)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error reading response: %v", err)
		}
	}
	log.Debug().Str("op", "httpclip/download").Msgf("Fetched %d bytes of source for %s", downloaded, job.URL)
	return nil
}
