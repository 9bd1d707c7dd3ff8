// Command t0sync converts facility-local timestamps to canonical UTC records.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/t0sync/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
