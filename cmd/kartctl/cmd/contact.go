package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func contactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contact [id]",
		Short: "Send the seller an opening message about a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}

			p, err := a.Open(ctx, args[0])
			if err != nil {
				return err
			}

			if err := a.ContactSeller(p); err != nil {
				return err
			}

			// Waits for the background send before exiting.
			a.Stop()

			fmt.Printf("Opened a conversation with %s about %q\n", p.SellerName, p.Title)
			return nil
		},
	}
}
