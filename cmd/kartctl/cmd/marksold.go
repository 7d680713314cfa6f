package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func markSoldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-sold [id]",
		Short: "Mark one of your listings as sold",
		Long: "Marks a listing you own as sold. Sold is final: the listing\n" +
			"stays visible with a SOLD badge and cannot be relisted.",
		Args: cobra.ExactArgs(1),
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

			updated, err := a.MarkSold(ctx, p)
			if err != nil {
				// The notifier already told the user; the error
				// drives the exit code.
				return err
			}

			if jsonOutput() {
				return outputJSON(updated)
			}
			return nil
		},
	}
}
