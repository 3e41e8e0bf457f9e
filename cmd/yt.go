package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/clipzo/clipzo/internal/utils"
)

func newYTCmd() *cobra.Command {
	var outputPath string
	var format string
	var startTime string
	var endTime string

	cmd := &cobra.Command{
		Use:     "yt [URL] --start HH:MM:SS --end HH:MM:SS [--output OUTPUT_PATH] [--format FORMAT]",
		Short:   "Download a clip of a video via yt-dlp",
		Aliases: []string{"youtube"},
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			job := utils.ClipJob{
				JobType:          "ytclip",
				URL:              args[0],
				OutputPath:       outputPath,
				ProgressType:     "stream",
				HTTPClientConfig: globalHTTPConfig,
				Metadata:         make(map[string]any),
			}
			job.Metadata["startTime"] = startTime
			job.Metadata["endTime"] = endTime
			if format == "" {
				format = appConfig.Format
			}
			job.Metadata["format"] = format
			if appConfig.YtdlpPath != "" {
				job.Metadata["ytdlpPathOverride"] = appConfig.YtdlpPath
			}
			jobs := []utils.ClipJob{job}
			log.Debug().Str("op", "cmd/yt").Msgf("Starting scheduler with %d jobs", len(jobs))
			runJobs(jobs)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	cmd.Flags().StringVar(&format, "format", "", "Video format (best, 1080p, 720p, etc.)")
	cmd.Flags().StringVar(&startTime, "start", "", "Clip start timecode (HH:MM:SS)")
	cmd.Flags().StringVar(&endTime, "end", "", "Clip end timecode (HH:MM:SS)")
	return cmd
}
