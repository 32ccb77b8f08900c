// httpstub CLI - fixture tooling for the httpstub stubbing engine
package main

import (
	"os"

	"github.com/getmockd/httpstub/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := cli.Execute(cli.BuildInfo{Version: Version, Commit: Commit}); err != nil {
		os.Exit(1)
	}
}
