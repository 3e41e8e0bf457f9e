package ytclip

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/clipzo/clipzo/internal/hook"
	"github.com/clipzo/clipzo/internal/utils"
	"github.com/rs/zerolog/log"
)

// progressMarker prefixes the machine-parsable lines requested from yt-dlp via
// --progress-template, so they can be told apart from regular output.
const progressMarker = "clipzo-progress|"

var progressTemplates = []string{
	"download:" + progressMarker + "%(progress.status)s|%(info.filename)s",
	"postprocess:" + progressMarker + "finished|%(info.filepath)s",
}

func (d *YTClipDownloader) Download(job *utils.ClipJob) error {
	ytdlpPath := job.Metadata["ytdlpPath"].(string)
	ytdlpFormat := job.Metadata["ytdlpFormat"].(string)
	ffmpegPath := job.Metadata["ffmpegPath"].(string)
	args := []string{
		"--progress",
		"--newline",
		"--no-warnings",
		"-f", ytdlpFormat,
		"--ffmpeg-location", ffmpegPath,
		"-o", job.OutputPath,
		"--no-playlist",
	}
	for _, template := range progressTemplates {
		args = append(args, "--progress-template", template)
	}
	args = append(args, BuildRangeArgs(job.Ranges)...)
	args = append(args, job.URL)
	cmd := exec.Command(ytdlpPath, args...)
	log.Debug().Str("op", "ytclip/download").Msgf("Executing yt-dlp command: %s", cmd.String())

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Error().Str("op", "ytclip/download").Err(err).Msg("Error creating stdout pipe")
		return fmt.Errorf("error creating stdout pipe: %v", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		log.Error().Str("op", "ytclip/download").Err(err).Msg("Error creating stderr pipe")
		return fmt.Errorf("error creating stderr pipe: %v", err)
	}
	if err := cmd.Start(); err != nil {
		log.Error().Str("op", "ytclip/download").Err(err).Msg("Error starting yt-dlp")
		return fmt.Errorf("error starting yt-dlp: %v", err)
	}

	var wg sync.WaitGroup
	for _, reader := range []io.Reader{stdout, stderr} {
		wg.Add(1)
		go func(r io.Reader) {
			defer wg.Done()
			processStream(r, job)
		}(reader)
	}
	// Both pipes must be drained before Wait closes them, or the final
	// postprocess progress line can be lost.
	wg.Wait()
	if err := cmd.Wait(); err != nil {
		log.Error().Str("op", "ytclip/download").Err(err).Msg("yt-dlp command failed")
		return fmt.Errorf("yt-dlp failed: %v", err)
	}
	log.Info().Str("op", "ytclip/download").Msgf("yt-dlp clip download completed for %s", job.URL)
	return nil
}

// processStream forwards raw output lines to the job's stream function and
// routes recognized progress lines to the job's recorder.
func processStream(reader io.Reader, job *utils.ClipJob) {
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if event, ok := ParseProgressLine(line); ok {
			if job.Recorder != nil {
				job.Recorder.HandleEvent(event)
			}
			continue
		}
		if job.StreamFunc != nil {
			job.StreamFunc(line)
		}
	}
}

// ParseProgressLine decodes a progress-template line into a hook event.
func ParseProgressLine(line string) (hook.Event, bool) {
	if !strings.HasPrefix(line, progressMarker) {
		return hook.Event{}, false
	}
	parts := strings.SplitN(strings.TrimPrefix(line, progressMarker), "|", 2)
	if len(parts) != 2 {
		return hook.Event{}, false
	}
	return hook.Event{Status: parts[0], Filename: parts[1]}, true
}
