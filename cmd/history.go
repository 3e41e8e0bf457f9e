package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipzo/clipzo/internal/history"
	"github.com/clipzo/clipzo/internal/output"
	"github.com/clipzo/clipzo/internal/timerange"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [--limit N]",
		Short: "List recently downloaded clips",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			store, err := history.Open(appConfig.HistoryPath)
			if err != nil {
				output.PrintError(fmt.Sprintf("Error opening history: %v", err))
				os.Exit(1)
			}
			defer store.Close()
			records, err := store.List(limit)
			if err != nil {
				output.PrintError(fmt.Sprintf("Error reading history: %v", err))
				os.Exit(1)
			}
			if len(records) == 0 {
				output.PrintInfo("No clips recorded yet")
				return
			}
			output.PrintHeader(fmt.Sprintf("Last %d clips", len(records)))
			for _, rec := range records {
				r := timerange.TimeRange{Start: rec.StartSec, End: rec.EndSec}
				fmt.Printf("  %s %s %s\n",
					output.FDetail(rec.CreatedAt.Format("2006-01-02 15:04")),
					output.FSuccess(rec.OutputPath),
					fmt.Sprintf("(%s of %s via %s)", r, rec.URL, rec.Source))
			}
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of clips to show")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the clip history",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			store, err := history.Open(appConfig.HistoryPath)
			if err != nil {
				output.PrintError(fmt.Sprintf("Error opening history: %v", err))
				os.Exit(1)
			}
			defer store.Close()
			if err := store.Clear(); err != nil {
				output.PrintError(fmt.Sprintf("Error clearing history: %v", err))
				os.Exit(1)
			}
			output.PrintSuccess("Clip history cleared")
		},
	})
	return cmd
}
