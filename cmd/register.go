package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/traillend-client/internal/infrastructure/traillend"
)

func newRegisterCmd() *cobra.Command {
	var reg traillend.Registration

	c := &cobra.Command{
		Use:   "register",
		Short: "Create a student account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := setup()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := client.Register(ctx, reg); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "account created for %s; log in with `traillend login`\n", reg.StudentID)
			return nil
		},
	}

	c.Flags().StringVar(&reg.Name, "name", "", "full name")
	c.Flags().StringVar(&reg.StudentID, "student-id", "", "student id")
	c.Flags().StringVar(&reg.Course, "course", "", "course")
	c.Flags().StringVar(&reg.Email, "email", "", "email address")
	c.Flags().StringVar(&reg.Mobile, "mobile", "", "mobile number")
	c.Flags().StringVar(&reg.Password, "password", "", "password")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("student-id")
	_ = c.MarkFlagRequired("email")
	_ = c.MarkFlagRequired("password")
	return c
}
