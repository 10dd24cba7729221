// Command flightgrid analyzes multi-operator airline networks from CSV
// tables: shortest paths, network stats, and codeshare opportunities.
package main

import (
	"os"

	"github.com/flightgrid/flightgrid/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
