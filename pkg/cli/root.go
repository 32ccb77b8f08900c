// Package cli implements the httpstub command-line tool: small utilities
// for authoring and checking YAML stub fixtures.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// BuildInfo carries version details set at link time.
type BuildInfo struct {
	Version string
	Commit  string
}

var rootCmd = &cobra.Command{
	Use:          "httpstub",
	Short:        "Author and check stub fixtures for the httpstub engine",
	SilenceUsage: true,
}

// Execute runs the CLI with the given build info.
func Execute(info BuildInfo) error {
	rootCmd.Version = fmt.Sprintf("%s (%s)", info.Version, info.Commit)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}
