package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/traillend-client/internal/domain/reservation"
)

func newStatusCmd() *cobra.Command {
	var userID int64

	c := &cobra.Command{
		Use:   "status",
		Short: "List your reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := setup()
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			if _, ok := restoreSession(cfg, client); !ok {
				return fmt.Errorf("not logged in; run `traillend login` first")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			records, err := client.ReservationsForUser(ctx, userID)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(os.Stdout, "No reservations.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tITEM\tBORROW\tRETURN\tSTATUS\tFEE")
			for _, r := range records {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.ItemName,
					reservation.FormatReadableString(r.StartDatetime, loc),
					reservation.FormatReadableString(r.EndDatetime, loc),
					r.Status, r.Fee)
			}
			return tw.Flush()
		},
	}

	c.Flags().Int64Var(&userID, "user-id", 0, "your user id")
	_ = c.MarkFlagRequired("user-id")

	c.AddCommand(newCancelCmd())
	return c
}

func newCancelCmd() *cobra.Command {
	var id int64

	c := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a pending reservation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := setup()
			if err != nil {
				return err
			}
			if _, ok := restoreSession(cfg, client); !ok {
				return fmt.Errorf("not logged in; run `traillend login` first")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := client.Cancel(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Reservation %d cancelled.\n", id)
			return nil
		},
	}

	c.Flags().Int64Var(&id, "id", 0, "reservation id")
	_ = c.MarkFlagRequired("id")
	return c
}
