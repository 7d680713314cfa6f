package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func messagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages [product-id]",
		Short: "Show the conversation thread for a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Stop()

			msgs, err := a.Messages(ctx, args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(msgs)
			}

			if len(msgs) == 0 {
				fmt.Println("No messages yet.")
				return nil
			}

			return printMessagesTable(msgs)
		},
	}
}
