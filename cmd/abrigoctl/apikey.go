package main

import (
	"context"

	"abrigo/backend/internal/db/repositories"

	"github.com/spf13/cobra"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage back-office API keys",
}

func newAPIKeyCreateCommand() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Issue a new active API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()

			ctx := context.Background()
			conn, err := e.sqlConn(ctx)
			if err != nil {
				return err
			}

			key, err := repositories.NewApiKeysRepo(conn).Create(ctx, label)
			if err != nil {
				return err
			}
			cmd.Printf("New API Key: %s\n", key)
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "Free-form note stored with the key")
	return cmd
}

func newAPIKeyRevokeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke [key]",
		Short: "Mark an API key inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()

			ctx := context.Background()
			conn, err := e.sqlConn(ctx)
			if err != nil {
				return err
			}

			if err := repositories.NewApiKeysRepo(conn).Revoke(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("revoked %s\n", args[0])
			return nil
		},
	}
}

func init() {
	apikeyCmd.AddCommand(newAPIKeyCreateCommand())
	apikeyCmd.AddCommand(newAPIKeyRevokeCommand())
	rootCmd.AddCommand(apikeyCmd)
}
