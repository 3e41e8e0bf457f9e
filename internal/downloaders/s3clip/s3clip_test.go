package s3clip

import (
	"testing"

	"github.com/clipzo/clipzo/internal/utils"
)

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"ObjectKey", "s3://media-bucket/games/match.mp4", "media-bucket", "games/match.mp4", false},
		{"BucketOnly", "s3://media-bucket", "media-bucket", "", false},
		{"Empty", "s3://", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := parseS3URL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseS3URL(%s) error = %v; wantErr %v", tt.url, err, tt.wantErr)
			}
			if bucket != tt.wantBucket || key != tt.wantKey {
				t.Errorf("parseS3URL(%s) = (%s, %s); want (%s, %s)", tt.url, bucket, key, tt.wantBucket, tt.wantKey)
			}
		})
	}
}

func TestValidateJobRejectsPrefixes(t *testing.T) {
	d := &S3ClipDownloader{}
	job := &utils.ClipJob{
		JobType: "s3clip",
		URL:     "s3://media-bucket/games/",
		Metadata: map[string]any{
			"startTime": "00:00:10",
			"endTime":   "00:01:00",
		},
	}
	if err := d.ValidateJob(job); err == nil {
		t.Error("expected error for folder-style key")
	}
}

func TestValidateJobStoresLocation(t *testing.T) {
	d := &S3ClipDownloader{}
	job := &utils.ClipJob{
		JobType: "s3clip",
		URL:     "s3://media-bucket/match.mp4",
		Metadata: map[string]any{
			"startTime": "00:00:10",
			"endTime":   "00:01:00",
		},
	}
	if err := d.ValidateJob(job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Metadata["bucket"] != "media-bucket" || job.Metadata["key"] != "match.mp4" {
		t.Errorf("metadata = %v", job.Metadata)
	}
}
