package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/campuskart/campuskart/pkg/types"
)

func sellCmd() *cobra.Command {
	var (
		title       string
		description string
		price       float64
		condition   string
		imageURL    string
	)

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "List a new product for sale",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Stop()

			p, err := a.CreateListing(ctx, &domain.NewProductInput{
				Title:       title,
				Description: description,
				Price:       price,
				Condition:   condition,
				ImageURL:    imageURL,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(p)
			}

			fmt.Printf("Listed %q for $%.2f (id %s)\n", p.Title, p.Price, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "product title (required)")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().Float64Var(&price, "price", 0, "asking price (required)")
	cmd.Flags().StringVar(&condition, "condition", "used", "condition (new, like_new, used)")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "product image URL")
	cobra.CheckErr(cmd.MarkFlagRequired("title"))
	cobra.CheckErr(cmd.MarkFlagRequired("price"))

	return cmd
}
