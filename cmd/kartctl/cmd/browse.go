package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse current listings",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Stop()

			products, err := a.Browse(ctx)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(products)
			}

			if len(products) == 0 {
				fmt.Println("No listings found.")
				return nil
			}

			return printProductsTable(products)
		},
	}
}
