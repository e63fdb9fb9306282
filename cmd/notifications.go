package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newNotificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notifs"},
		Short:   "Show your notifications",
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

			notes, err := client.Notifications(ctx)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				fmt.Fprintln(os.Stdout, "No notifications.")
				return nil
			}
			for _, n := range notes {
				fmt.Fprintf(os.Stdout, "[%s] %s\n", n.CreatedAt, n.Message)
			}
			return nil
		},
	}
}
