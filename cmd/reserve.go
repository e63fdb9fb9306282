package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/traillend-client/internal/application/usecases"
	"github.com/example/traillend-client/internal/domain/reservation"
	"github.com/example/traillend-client/internal/infrastructure/postgres"
	"github.com/example/traillend-client/internal/infrastructure/qrexport"
	"github.com/example/traillend-client/internal/logger"
)

func newReserveCmd() *cobra.Command {
	var (
		itemID        int64
		isoDate       string
		slotLabel     string
		signatureFile string
		acceptTerms   bool
		pin           string
		qrOut         string
	)

	c := &cobra.Command{
		Use:   "reserve",
		Short: "Reserve an item for a date and time slot",
		Long: `Reserve walks the whole flow in one go: pick a date and one of the
daily slots (see "traillend slots"), accept the lending terms, attach your
captured signature image, submit, and get the QR-coded receipt back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := setup()
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			sess, ok := restoreSession(cfg, client)
			if !ok {
				return fmt.Errorf("not logged in; run `traillend login` first")
			}

			// Shared kiosk installs gate submission behind a device PIN.
			if store, err := openAuthStore(cfg); err == nil && store.HasPIN() {
				if !store.VerifyPIN(pin) {
					return fmt.Errorf("device PIN required (pass --pin)")
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			item, err := usecases.BrowseInventory{API: client}.FindItem(ctx, itemID)
			if err != nil {
				return err
			}

			signature, err := os.ReadFile(signatureFile)
			if err != nil {
				return fmt.Errorf("read signature: %w", err)
			}

			draft := reservation.NewDraft(item.Ref(), loc)
			if err := draft.SelectDate(isoDate); err != nil {
				return err
			}
			if err := draft.SelectSlot(slotLabel); err != nil {
				return err
			}
			if err := draft.Complete(acceptTerms, signature); err != nil {
				return err
			}

			w := draft.Window()
			fmt.Fprintf(os.Stdout, "Item:     %s (%s)\n", item.Name, item.Department)
			fmt.Fprintf(os.Stdout, "Borrow:   %s\n", reservation.FormatReadable(w.Start))
			fmt.Fprintf(os.Stdout, "Return:   %s\n", reservation.FormatReadable(w.End))
			fmt.Fprintf(os.Stdout, "Fee:      %s\n", item.FeeDisplay())

			receipt, err := usecases.SubmitDraft{Submitter: client, Token: sess.Token}.Execute(ctx, draft)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "\nReservation confirmed.\n")
			fmt.Fprintf(os.Stdout, "Transaction: %s\n", receipt.TransactionID)
			fmt.Fprintf(os.Stdout, "Borrow:      %s\n", reservation.FormatReadable(receipt.Window.Start))
			fmt.Fprintf(os.Stdout, "Return:      %s\n", reservation.FormatReadable(receipt.Window.End))
			fmt.Fprintf(os.Stdout, "Fee:         %s\n", receipt.Fee)

			// Archive and QR export are conveniences; the reservation stands
			// even if they fail, so failures only warn.
			if cfg.DatabaseURL != "" {
				if err := archiveReceipt(ctx, cfg.DatabaseURL, receipt); err != nil {
					logger.Warn("receipt archive failed", "error", err)
					fmt.Fprintf(os.Stderr, "warning: could not archive receipt: %v\n", err)
				}
			}
			if qrOut != "" {
				if err := qrexport.WritePNG(qrOut, receipt.QRPayload(), 0); err != nil {
					logger.Warn("qr export failed", "error", err)
					fmt.Fprintf(os.Stderr, "warning: could not write QR code: %v\n", err)
				} else {
					fmt.Fprintf(os.Stdout, "QR code:     %s\n", qrOut)
				}
			}
			return nil
		},
	}

	c.Flags().Int64Var(&itemID, "item-id", 0, "inventory item id")
	c.Flags().StringVar(&isoDate, "date", "", "reservation date YYYY-MM-DD")
	c.Flags().StringVar(&slotLabel, "slot", "", `time slot label, e.g. "2:00 PM - 3:30 PM"`)
	c.Flags().StringVar(&signatureFile, "signature-file", "", "path to the captured signature image")
	c.Flags().BoolVar(&acceptTerms, "accept-terms", false, "accept the lending terms and conditions")
	c.Flags().StringVar(&pin, "pin", "", "device PIN, when one is set")
	c.Flags().StringVar(&qrOut, "qr-out", "", "write the receipt QR code PNG here")
	_ = c.MarkFlagRequired("item-id")
	_ = c.MarkFlagRequired("date")
	_ = c.MarkFlagRequired("slot")
	_ = c.MarkFlagRequired("signature-file")
	return c
}

func archiveReceipt(ctx context.Context, databaseURL string, r reservation.Receipt) error {
	archive, err := postgres.OpenArchive(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer archive.Close()

	if err := archive.EnsureSchema(ctx); err != nil {
		return err
	}
	return archive.Save(ctx, r)
}
