package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/traillend-client/internal/infrastructure/authstore"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	c := &cobra.Command{
		Use:   "login",
		Short: "Log in and cache the access token locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := setup()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			token, err := client.Login(ctx, username, password)
			if err != nil {
				return err
			}

			store, err := openAuthStore(cfg)
			if err != nil {
				return err
			}
			if err := store.SaveSession(authstore.Session{Token: token, Username: username}); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "logged in as %q\n", username)
			return nil
		},
	}

	c.Flags().StringVar(&username, "username", "", "student username")
	c.Flags().StringVar(&password, "password", "", "password")
	_ = c.MarkFlagRequired("username")
	_ = c.MarkFlagRequired("password")
	return c
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			store, err := openAuthStore(cfg)
			if err != nil {
				return err
			}
			if err := store.ClearSession(); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "logged out")
			return nil
		},
	}
}
