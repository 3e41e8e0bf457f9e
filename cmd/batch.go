package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/clipzo/clipzo/internal/output"
	"github.com/clipzo/clipzo/internal/utils"
)

type BatchFile map[string][]utils.BatchEntry

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [YAML_FILE]",
		Short: "Process multiple clip downloads from a YAML file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			yamlFile := args[0]
			data, err := os.ReadFile(yamlFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading YAML file: %v\n", err)
				os.Exit(1)
			}
			var batchFile BatchFile
			if err := yaml.Unmarshal(data, &batchFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing YAML file: %v\n", err)
				os.Exit(1)
			}
			jobs := buildJobsFromBatch(batchFile)
			if len(jobs) == 0 {
				fmt.Fprintf(os.Stderr, "No valid jobs found in the batch file\n")
				os.Exit(1)
			}
			runJobs(jobs)
		},
	}
	return cmd
}

func buildJobsFromBatch(batchFile BatchFile) []utils.ClipJob {
	var jobs []utils.ClipJob
	for jobType, entries := range batchFile {
		normalizedType := normalizeJobType(jobType)
		if normalizedType == "" {
			output.PrintWarning(fmt.Sprintf("Unknown job type '%s', skipping...", jobType))
			continue
		}
		for _, entry := range entries {
			if entry.Link == "" {
				output.PrintWarning(fmt.Sprintf("Empty link found in %s section, skipping...", jobType))
				continue
			}
			if entry.Start == "" || entry.End == "" {
				output.PrintWarning(fmt.Sprintf("Entry for %s has no start/end range, skipping...", entry.Link))
				continue
			}
			job := utils.ClipJob{
				JobType:          normalizedType,
				URL:              entry.Link,
				OutputPath:       entry.OutputPath,
				HTTPClientConfig: globalHTTPConfig,
				Metadata:         make(map[string]any),
			}
			job.Metadata["startTime"] = entry.Start
			job.Metadata["endTime"] = entry.End
			switch normalizedType {
			case "ytclip":
				job.ProgressType = "stream"
				job.Metadata["format"] = appConfig.Format
				if appConfig.YtdlpPath != "" {
					job.Metadata["ytdlpPathOverride"] = appConfig.YtdlpPath
				}
			case "s3clip":
				job.ProgressType = "progress"
				job.Metadata["profile"] = "default"
			default:
				job.ProgressType = "progress"
			}
			jobs = append(jobs, job)
		}
	}
	return jobs
}

func normalizeJobType(jobType string) string {
	typeMap := map[string]string{
		"yt":      "ytclip",
		"youtube": "ytclip",
		"ytclip":  "ytclip",
		"http":    "httpclip",
		"https":   "httpclip",
		"s3":      "s3clip",
	}
	return typeMap[strings.ToLower(jobType)]
}
