package s3clip

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clipzo/clipzo/internal/ffcut"
	"github.com/clipzo/clipzo/internal/timerange"
	"github.com/clipzo/clipzo/internal/utils"
	"github.com/rs/zerolog/log"
)

type S3ClipDownloader struct{}

func (d *S3ClipDownloader) ValidateJob(job *utils.ClipJob) error {
	bucket, key, err := parseS3URL(job.URL)
	if err != nil {
		return err
	}
	if key == "" || strings.HasSuffix(key, "/") {
		return fmt.Errorf("s3 clip source must be a single object, got s3://%s/%s", bucket, key)
	}
	if _, err := timerange.FromParams(job.RangeParams()); err != nil {
		return err
	}
	job.Metadata["bucket"] = bucket
	job.Metadata["key"] = key
	log.Info().Str("op", "s3clip/initial").Msgf("job validated for s3://%s/%s", bucket, key)
	return nil
}

func (d *S3ClipDownloader) BuildJob(job *utils.ClipJob) error {
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

	bucket := job.Metadata["bucket"].(string)
	key := job.Metadata["key"].(string)
	profile := "default"
	if p, ok := job.Metadata["profile"].(string); ok && p != "" {
		profile = p
	}
	job.Metadata["profile"] = profile
	s3Client, err := getS3Client(profile)
	if err != nil {
		return fmt.Errorf("error creating S3 client: %v", err)
	}
	size, err := getS3ObjectSize(bucket, key, s3Client)
	if err != nil {
		return fmt.Errorf("error getting S3 object info: %v", err)
	}
	job.Metadata["size"] = size
	log.Debug().Str("op", "s3clip/initial").Msgf("Determined object size: %d", size)

	if job.OutputPath == "" {
		parts := strings.Split(key, "/")
		base := parts[len(parts)-1]
		ext := filepath.Ext(base)
		job.OutputPath = strings.TrimSuffix(base, ext) + "_clip" + ext
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
	log.Info().Str("op", "s3clip/initial").Msgf("job built for s3://%s/%s", bucket, key)
	return nil
}

func parseS3URL(url string) (string, string, error) {
	url = strings.TrimPrefix(url, "s3://")
	parts := strings.SplitN(url, "/", 2)
	if len(parts) < 1 || parts[0] == "" {
		return "", "", fmt.Errorf("invalid S3 URL format")
	}
	bucket := parts[0]
	key := ""
	if len(parts) > 1 {
		key = parts[1]
	}
	return bucket, key, nil
}
