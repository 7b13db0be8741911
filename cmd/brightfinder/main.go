// Package main provides the CLI entry point for brightfinder.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appVersion = "0.3.0"

func main() {
	root := &cobra.Command{
		Use:           "brightfinder",
		Short:         "Find the brightest pixel in images, animations, and camera streams",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newSimulateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
