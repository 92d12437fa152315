// floorplan — interior room layout generator
//
// Places rooms inside a floor shape built from rectangular regions,
// maximizing desired wall adjacencies, then expands rooms into unused
// space. Plans are read from JSON or TOML files; results can be
// exported as PDF reports or DXF drawings, or served over HTTP.
//
// Build:
//
//	go build -o floorplan ./cmd/floorplan
package main

import (
	"os"

	"github.com/piwi3910/floorplan/internal/cli"
)

// Version information injected at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
