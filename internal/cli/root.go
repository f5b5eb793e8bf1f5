// Package cli wires the command line surface to the pipeline.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "reportkit",
	Short:         "Generate personalized survey result reports",
	Long:          "reportkit turns a raw survey export into one compiled PDF report per respondent.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
