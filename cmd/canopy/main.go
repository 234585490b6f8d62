// Package main is the entry point for the canopy CLI tool.
package main

import (
	"os"

	"github.com/cmorrow/canopy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
