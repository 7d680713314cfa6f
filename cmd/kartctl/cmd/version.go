package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the kartctl version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("kartctl", version)
		},
	}
}
