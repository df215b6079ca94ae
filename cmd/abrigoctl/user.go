package main

import (
	"context"
	"fmt"
	"time"

	"abrigo/backend/internal/auth"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Inspect and manage users",
}

func newUserRolesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roles [user-id]",
		Short: "Show a user's role list next to their membership rows",
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

			ctx := context.Background()
			user, err := svcs.Users.Get(ctx, args[0])
			if err != nil {
				return err
			}
			rows, err := svcs.Memberships.ListAllForUser(ctx, user.ID)
			if err != nil {
				return err
			}

			cmd.Printf("%s (%s) roles: %v\n\n", user.Name, user.ID, user.Roles.Strings())

			tw := table.NewWriter()
			tw.Style().Options.DrawBorder = false
			tw.Style().Options.SeparateColumns = false
			tw.Style().Options.SeparateFooter = false
			tw.Style().Options.SeparateHeader = false
			tw.Style().Options.SeparateRows = false
			tw.AppendHeader(table.Row{
				"ROLE",
				"PROJECT",
				"ATTRIBUTES",
				"SINCE",
			})
			for _, m := range rows {
				tw.AppendRow(table.Row{
					m.Role,
					m.ProjectID,
					fmt.Sprintf("%v", map[string]any(m.Attributes)),
					m.CreatedAt.Format(time.DateOnly),
				})
			}
			cmd.Printf("%s\n", tw.Render())

			return nil
		},
	}
}

func newUserActiveCommand(use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [user-id]",
		Short: fmt.Sprintf("Set is_active=%t on a user", active),
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

			user, err := svcs.Users.SetActive(context.Background(), args[0], active)
			if err != nil {
				return err
			}
			cmd.Printf("%s is_active=%t\n", user.ID, user.IsActive)
			return nil
		},
	}
}

func newUserTokenCommand() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token [user-id]",
		Short: "Sign a bearer token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if e.cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}

			svcs, err := e.services()
			if err != nil {
				return err
			}
			if _, err := svcs.Users.Get(context.Background(), args[0]); err != nil {
				return err
			}

			token, err := auth.NewTokenManager(e.cfg.JWTSecret, e.cfg.JWTIssuer).GenerateToken(args[0], ttl)
			if err != nil {
				return err
			}
			cmd.Println(token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}

func init() {
	userCmd.AddCommand(newUserRolesCommand())
	userCmd.AddCommand(newUserActiveCommand("deactivate", false))
	userCmd.AddCommand(newUserActiveCommand("activate", true))
	userCmd.AddCommand(newUserTokenCommand())
	rootCmd.AddCommand(userCmd)
}
