// Package cmd implements the CLI commands for kartd.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "kartd",
	Short: "CampusKart marketplace API server",
	Long: "kartd is the authoritative backend for the CampusKart marketplace:\n" +
		"it owns product status transitions, serves the listing feed, and\n" +
		"stores conversation threads.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
