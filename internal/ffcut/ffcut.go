package ffcut

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/clipzo/clipzo/internal/timerange"
	"github.com/rs/zerolog/log"
)

// Cutter extracts a time range from a local media file with ffmpeg.
type Cutter struct {
	FFmpegPath string
	Reencode   bool
}

func New(ffmpegPath string) *Cutter {
	return &Cutter{FFmpegPath: ffmpegPath}
}

// BuildArgs assembles the ffmpeg argument list for cutting r out of input.
// Stream copy is the default; Reencode switches to H.264/AAC for sources
// whose codecs do not survive container-level cutting.
func (c *Cutter) BuildArgs(input, output string, r timerange.TimeRange) []string {
	args := []string{
		"-y",
		"-ss", timerange.FormatTimecode(r.Start),
		"-to", timerange.FormatTimecode(r.End),
		"-i", input,
	}
	if c.Reencode {
		args = append(args, "-c:v", "libx264", "-c:a", "aac", "-preset", "fast", "-crf", "23")
	} else {
		args = append(args, "-c", "copy")
	}
	return append(args, output)
}

// Cut runs ffmpeg and forwards its stderr lines to streamFunc.
func (c *Cutter) Cut(input, output string, r timerange.TimeRange, streamFunc func(string)) error {
	if r.End <= r.Start {
		return fmt.Errorf("invalid range %s: end must be greater than start", r)
	}
	args := c.BuildArgs(input, output, r)
	cmd := exec.Command(c.FFmpegPath, args...)
	log.Debug().Str("op", "ffcut/cut").Msgf("Executing ffmpeg command: %s", cmd.String())

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("error creating stderr pipe: %v", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error starting ffmpeg: %v", err)
	}
	scanStream(stderr, streamFunc)
	if err := cmd.Wait(); err != nil {
		log.Error().Str("op", "ffcut/cut").Err(err).Msg("ffmpeg command failed")
		return fmt.Errorf("ffmpeg failed: %v", err)
	}
	log.Info().Str("op", "ffcut/cut").Msgf("Cut %s of %s into %s", r, input, output)
	return nil
}

func scanStream(reader io.Reader, streamFunc func(string)) {
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && streamFunc != nil {
			streamFunc(line)
		}
	}
}

// EnsureFFmpeg locates ffmpeg in PATH or alongside the executable. A non-empty
// override wins when it points at a usable binary.
func EnsureFFmpeg(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("configured ffmpeg path not usable: %v", err)
		}
		return override, nil
	}
	path, err := exec.LookPath("ffmpeg")
	if err == nil {
		return path, nil
	}
	execDir, err := os.Executable()
	if err == nil {
		ffmpegPath := filepath.Join(filepath.Dir(execDir), "ffmpeg")
		if runtime.GOOS == "windows" {
			ffmpegPath += ".exe"
		}
		if _, err := os.Stat(ffmpegPath); err == nil {
			return ffmpegPath, nil
		}
	}
	return "", fmt.Errorf("ffmpeg not found in PATH, please install manually")
}
