package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/httpstub/pkg/config"
)

var lintCmd = &cobra.Command{
	Use:   "lint <glob>...",
	Short: "Validate stub fixture files without loading them into an engine",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return lintPatterns(cmd.OutOrStdout(), args)
	},
}

func lintPatterns(out io.Writer, patterns []string) error {
	total := 0
	for _, pattern := range patterns {
		stubs, err := config.LoadGlob(pattern)
		if err != nil {
			return err
		}
		total += len(stubs)
	}
	fmt.Fprintf(out, "%d stubs OK\n", total)
	return nil
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
