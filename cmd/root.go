package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// CLI flags shared across subcommands
	configPath string // Path to the YAML problem spec
	logLevel   string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "geosim",
	Short: "Sequential geostatistical simulation over spatial domains",
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
