package main

import (
	"context"

	"github.com/spf13/cobra"
)

// newBootstrapCommand grants SuperAdmin without an acting user. It is the
// only way to create the first SuperAdmin, so it lives outside the HTTP API.
func newBootstrapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap-superadmin [user-id]",
		Short: "Grant SuperAdmin to an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()

			svcs, err := e.services()
			if err != nil {
				return err
			}

			user, err := svcs.Promotion.Bootstrap(context.Background(), args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%s (%s) roles: %v\n", user.Name, user.ID, user.Roles.Strings())
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newBootstrapCommand())
}
