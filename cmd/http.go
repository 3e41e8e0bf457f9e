package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clipzo/clipzo/internal/utils"
)

func newHTTPCmd() *cobra.Command {
	var outputPath string
	var startTime string
	var endTime string

	cmd := &cobra.Command{
		Use:   "http [URL] --start HH:MM:SS --end HH:MM:SS [--output OUTPUT_PATH]",
		Short: "Download a direct media URL and cut a clip from it",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			job := utils.ClipJob{
				JobType:          "httpclip",
				URL:              args[0],
				OutputPath:       outputPath,
				ProgressType:     "progress",
				HTTPClientConfig: globalHTTPConfig,
				Metadata:         make(map[string]any),
			}
			job.Metadata["startTime"] = startTime
			job.Metadata["endTime"] = endTime
			runJobs([]utils.ClipJob{job})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	cmd.Flags().StringVar(&startTime, "start", "", "Clip start timecode (HH:MM:SS)")
	cmd.Flags().StringVar(&endTime, "end", "", "Clip end timecode (HH:MM:SS)")
	return cmd
}
