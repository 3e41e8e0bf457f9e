package utils

import (
	"github.com/clipzo/clipzo/internal/hook"
	"github.com/clipzo/clipzo/internal/timerange"
)

type Downloader interface {
	Download(job *ClipJob) error
	BuildJob(job *ClipJob) error
	ValidateJob(job *ClipJob) error
}

type ClipJob struct {
	ID               string
	JobType          string
	URL              string
	OutputPath       string
	Ranges           []timerange.TimeRange
	ProgressType     string
	ProgressFunc     func(downloaded, total int64)
	StreamFunc       func(line string)
	Recorder         *hook.Recorder
	Metadata         map[string]any
	HTTPClientConfig HTTPClientConfig
}

// RangeParams returns a job's textual range parameters the way the cmd layer
// collected them, shaped for timerange.FromParams.
func (j *ClipJob) RangeParams() map[string]string {
	params := make(map[string]string)
	if start, ok := j.Metadata["startTime"].(string); ok {
		params["start_time"] = start
	}
	if end, ok := j.Metadata["endTime"].(string); ok {
		params["end_time"] = end
	}
	return params
}

// TempDir returns the configured temp directory name for this job, falling
// back to the built-in default.
func (j *ClipJob) TempDir() string {
	if dir, ok := j.Metadata["tempDir"].(string); ok && dir != "" {
		return dir
	}
	return TempDirName
}

type BatchEntry struct {
	OutputPath string `yaml:"op,omitempty"`
	Link       string `yaml:"link"`
	Start      string `yaml:"start"`
	End        string `yaml:"end"`
}
