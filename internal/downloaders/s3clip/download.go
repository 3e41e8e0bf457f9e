package s3clip

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/clipzo/clipzo/internal/ffcut"
	"github.com/clipzo/clipzo/internal/hook"
	"github.com/clipzo/clipzo/internal/utils"
	"github.com/rs/zerolog/log"
)

func (d *S3ClipDownloader) Download(job *utils.ClipJob) error {
	bucket := job.Metadata["bucket"].(string)
	key := job.Metadata["key"].(string)
	profile := job.Metadata["profile"].(string)
	size := job.Metadata["size"].(int64)
	tempFile := job.Metadata["tempFile"].(string)
	ffmpegPath := job.Metadata["ffmpegPath"].(string)

	s3Client, err := getS3Client(profile)
	if err != nil {
		return fmt.Errorf("error creating S3 client: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(tempFile), 0755); err != nil {
		return fmt.Errorf("error creating temp directory: %v", err)
	}
	defer os.Remove(tempFile)
	log.Info().Str("op", "s3clip/download").Msgf("Starting object download for s3://%s/%s", bucket, key)

	progressCh := make(chan int64, 100)
	go func() {
		var totalDownloaded int64
		for bytes := range progressCh {
			totalDownloaded += bytes
			if job.ProgressFunc != nil {
				job.ProgressFunc(totalDownloaded, size)
			}
		}
	}()
	err = performS3Download(bucket, key, tempFile, s3Client, progressCh)
	close(progressCh)
	if err != nil {
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
