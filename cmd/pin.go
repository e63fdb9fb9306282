package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/traillend-client/internal/config"
)

func newPinCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "pin",
		Short: "Manage the device PIN for shared kiosks",
	}
	c.AddCommand(newPinSetCmd(), newPinClearCmd())
	return c
}

func newPinSetCmd() *cobra.Command {
	var pin string

	c := &cobra.Command{
		Use:   "set",
		Short: "Set the device PIN required to submit reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			store, err := openAuthStore(cfg)
			if err != nil {
				return err
			}
			if err := store.SetPIN(pin); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "Device PIN set.")
			return nil
		},
	}

	c.Flags().StringVar(&pin, "pin", "", "new PIN (at least 4 characters)")
	_ = c.MarkFlagRequired("pin")
	return c
}

func newPinClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the device PIN",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			store, err := openAuthStore(cfg)
			if err != nil {
				return err
			}
			if err := store.ClearPIN(); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "Device PIN cleared.")
			return nil
		},
	}
}
