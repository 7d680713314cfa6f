package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show listing details",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Stop()

			p, err := a.Open(ctx, args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(p)
			}

			return printProductDetail(p)
		},
	}
}
