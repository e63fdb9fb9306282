package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/traillend-client/internal/application/usecases"
	"github.com/example/traillend-client/internal/domain/reservation"
)

func newItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List lendable equipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := setup()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			items, err := usecases.BrowseInventory{API: client}.Execute(ctx)
			if err != nil {
				return err
			}
			for _, it := range items {
				fmt.Fprintf(os.Stdout, "id=%d name=%q department=%q fee=%s\n",
					it.ID, it.Name, it.Department, it.FeeDisplay())
			}
			return nil
		},
	}
}

func newSlotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List the daily reservation time slots",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range reservation.Slots() {
				fmt.Fprintln(os.Stdout, s.Label)
			}
		},
	}
}
