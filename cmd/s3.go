package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clipzo/clipzo/internal/utils"
)

func newS3Cmd() *cobra.Command {
	var outputPath string
	var profile string
	var startTime string
	var endTime string

	cmd := &cobra.Command{
		Use:   "s3 [s3://BUCKET/KEY] --start HH:MM:SS --end HH:MM:SS [--profile PROFILE] [--output OUTPUT_PATH]",
		Short: "Download an S3 media object and cut a clip from it",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			job := utils.ClipJob{
				JobType:          "s3clip",
				URL:              args[0],
				OutputPath:       outputPath,
				ProgressType:     "progress",
				HTTPClientConfig: globalHTTPConfig,
				Metadata:         make(map[string]any),
			}
			job.Metadata["startTime"] = startTime
			job.Metadata["endTime"] = endTime
			job.Metadata["profile"] = profile
			runJobs([]utils.ClipJob{job})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	cmd.Flags().StringVar(&profile, "profile", "default", "AWS shared config profile")
	cmd.Flags().StringVar(&startTime, "start", "", "Clip start timecode (HH:MM:SS)")
	cmd.Flags().StringVar(&endTime, "end", "", "Clip end timecode (HH:MM:SS)")
	return cmd
}
