package scheduler

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clipzo/clipzo/internal/downloaders/httpclip"
	"github.com/clipzo/clipzo/internal/downloaders/s3clip"
	"github.com/clipzo/clipzo/internal/downloaders/ytclip"
	"github.com/clipzo/clipzo/internal/history"
	"github.com/clipzo/clipzo/internal/hook"
	"github.com/clipzo/clipzo/internal/output"
	"github.com/clipzo/clipzo/internal/utils"
)

// downloaderRegistry maps job types to their downloader implementations.
var downloaderRegistry = map[string]utils.Downloader{
	"ytclip":   &ytclip.YTClipDownloader{},
	"httpclip": &httpclip.HTTPClipDownloader{},
	"s3clip":   &s3clip.S3ClipDownloader{},
}

// Run executes jobs across numWorkers workers. Completed clips are appended to
// store when it is non-nil. Returns an error if any job failed.
func Run(jobs []utils.ClipJob, numWorkers int, store *history.Store) error {
	outputMgr := output.NewManager()
	outputMgr.StartDisplay()

	jobCh := make(chan utils.ClipJob, len(jobs))
	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			processJobs(jobCh, outputMgr, store)
		}()
	}
	wg.Wait()
	outputMgr.StopDisplay()

	if outputMgr.HasErrors() {
		return fmt.Errorf("one or more jobs failed")
	}
	return nil
}

func processJobs(jobCh <-chan utils.ClipJob, outputMgr *output.Manager, store *history.Store) {
	for job := range jobCh {
		job.ID = uuid.New().String()
		job.Recorder = hook.NewRecorder()
		jobID := outputMgr.RegisterJob(job.URL)

		downloader, exists := downloaderRegistry[job.JobType]
		if !exists {
			outputMgr.ReportError(jobID, fmt.Errorf("unknown job type: %s", job.JobType))
			outputMgr.SetMessage(jobID, fmt.Sprintf("Error: Unknown job type %s", job.JobType))
			continue
		}

		outputMgr.SetStatus(jobID, "pending")
		outputMgr.SetMessage(jobID, fmt.Sprintf("Validating %s job", job.JobType))
		if err := downloader.ValidateJob(&job); err != nil {
			outputMgr.ReportError(jobID, fmt.Errorf("validation failed: %v", err))
			outputMgr.SetMessage(jobID, fmt.Sprintf("Validation failed for %s", job.URL))
			continue
		}

		outputMgr.SetMessage(jobID, fmt.Sprintf("Building %s job", job.JobType))
		if err := downloader.BuildJob(&job); err != nil {
			outputMgr.ReportError(jobID, fmt.Errorf("build failed: %v", err))
			outputMgr.SetMessage(jobID, fmt.Sprintf("Build failed for %s", job.URL))
			continue
		}

		switch job.ProgressType {
		case "progress":
			job.ProgressFunc = func(downloaded, total int64) {
				outputMgr.AddProgressBarToStream(jobID, downloaded, total, utils.FormatBytes(uint64(downloaded)))
			}
		case "stream":
			job.StreamFunc = func(line string) {
				outputMgr.AddStreamLine(jobID, line)
			}
		}

		outputMgr.SetStatus(jobID, "running")
		outputMgr.SetMessage(jobID, fmt.Sprintf("Downloading clip %s of %s", rangeLabel(&job), job.URL))
		if err := downloader.Download(&job); err != nil {
			outputMgr.ReportError(jobID, fmt.Errorf("download failed: %v", err))
			outputMgr.SetMessage(jobID, fmt.Sprintf("Download failed for %s", job.URL))
			continue
		}

		finalPath, ok := job.Recorder.Path()
		if !ok {
			// Downloader exited clean without a finished event; fall back to
			// the requested output path.
			finalPath = job.OutputPath
			log.Debug().Str("op", "scheduler/run").Msgf("No finished event for %s, using output path", job.URL)
		}
		if store != nil && len(job.Ranges) > 0 && recordablePath(finalPath) {
			record := history.Record{
				URL:        job.URL,
				Source:     job.JobType,
				StartSec:   job.Ranges[0].Start,
				EndSec:     job.Ranges[0].End,
				OutputPath: finalPath,
			}
			if err := store.Append(record); err != nil {
				log.Warn().Str("op", "scheduler/run").Err(err).Msg("Failed to record clip in history")
			}
		}
		outputMgr.Complete(jobID, fmt.Sprintf("Saved %s", finalPath))
	}
}

// recordablePath reports whether path is a real file path rather than an
// unresolved yt-dlp output template, which the fallback can produce when no
// finished event was observed.
func recordablePath(path string) bool {
	return path != "" && !strings.Contains(path, "%(")
}

func rangeLabel(job *utils.ClipJob) string {
	if len(job.Ranges) == 0 {
		return ""
	}
	return job.Ranges[0].String()
}
