// Command dirpulse reports size, extension and age statistics of a directory tree.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/dirpulse/internal/cli"
)

// version is set at build time.
//
//nolint:gochecknoglobals // Set via ldflags
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
