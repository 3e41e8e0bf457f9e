package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipzo/clipzo/internal/output"
	"github.com/clipzo/clipzo/internal/utils"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [path]",
		Short: "Clean up temporary files",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var err error
			if len(args) == 0 {
				err = utils.CleanLocal(appConfig.TempDir)
			} else {
				err = utils.CleanFunction(args[0], appConfig.TempDir)
			}
			if err != nil {
				output.PrintError(fmt.Sprintf("Error cleaning temporary files: %v", err))
				os.Exit(1)
			}
			output.PrintSuccess("Temporary files cleaned")
		},
	}
}
