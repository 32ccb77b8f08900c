package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/httpstub/pkg/config"
)

var showCmd = &cobra.Command{
	Use:   "show <glob>...",
	Short: "Print the stubs a fixture set declares, in resolution order",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showPatterns(cmd.OutOrStdout(), args)
	},
}

func showPatterns(out io.Writer, patterns []string) error {
	for _, pattern := range patterns {
		stubs, err := config.LoadGlob(pattern)
		if err != nil {
			return err
		}
		for _, s := range stubs {
			if s.Response.Failed() {
				fmt.Fprintf(out, "%s -> fail: %v\n", s, s.Response.Err)
				continue
			}
			fmt.Fprintf(out, "%s -> %d (%d bytes)\n", s, s.Response.StatusCode, len(s.Response.Body))
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
