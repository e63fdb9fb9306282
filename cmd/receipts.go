package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/traillend-client/internal/config"
	"github.com/example/traillend-client/internal/domain/reservation"
	"github.com/example/traillend-client/internal/infrastructure/postgres"
	"github.com/example/traillend-client/internal/infrastructure/qrexport"
)

func newReceiptsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "receipts",
		Short: "Browse locally archived reservation receipts",
		Long: `Receipts read from the local archive, which is populated whenever
DATABASE_URL is set during "traillend reserve". The archive is a convenience
copy; the lending office's records are authoritative.`,
	}
	c.AddCommand(newReceiptsListCmd(), newReceiptsQRCmd())
	return c
}

func openArchive(ctx context.Context) (*postgres.ReceiptArchive, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set; the receipt archive is disabled")
	}
	archive, err := postgres.OpenArchive(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := archive.EnsureSchema(ctx); err != nil {
		archive.Close()
		return nil, err
	}
	return archive, nil
}

func newReceiptsListCmd() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "list",
		Short: "List recently archived receipts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			archive, err := openArchive(ctx)
			if err != nil {
				return err
			}
			defer archive.Close()

			receipts, err := archive.ListRecent(ctx, limit)
			if err != nil {
				return err
			}
			if len(receipts) == 0 {
				fmt.Fprintln(os.Stdout, "No archived receipts.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TRANSACTION\tITEM\tBORROW\tRETURN\tFEE")
			for _, r := range receipts {
				start, end := reservation.InvalidDateDisplay, reservation.InvalidDateDisplay
				if r.StartAt != nil {
					start = reservation.FormatReadable(*r.StartAt)
				}
				if r.EndAt != nil {
					end = reservation.FormatReadable(*r.EndAt)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.TransactionID, r.ItemName, start, end, r.Fee)
			}
			return tw.Flush()
		},
	}

	c.Flags().IntVar(&limit, "limit", 20, "maximum receipts to show")
	return c
}

func newReceiptsQRCmd() *cobra.Command {
	var (
		transactionID string
		out           string
	)

	c := &cobra.Command{
		Use:   "qr",
		Short: "Write the QR code PNG for a receipt",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := qrexport.WritePNG(out, transactionID, 0); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Wrote %s\n", out)
			return nil
		},
	}

	c.Flags().StringVar(&transactionID, "transaction-id", "", "receipt transaction id")
	c.Flags().StringVar(&out, "out", "", "output PNG path")
	_ = c.MarkFlagRequired("transaction-id")
	_ = c.MarkFlagRequired("out")
	return c
}
