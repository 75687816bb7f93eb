package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "cspctl",
	Short:   "Build, validate, and collect Content-Security-Policy headers",
	Long:    "cspctl validates and inspects Content-Security-Policy header lines,\nrenders policies from config files, and runs a violation report collector.",
	Version: Version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
