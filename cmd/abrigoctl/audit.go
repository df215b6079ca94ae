package main

import (
	"context"

	"abrigo/backend/internal/db/repositories"
	"abrigo/backend/internal/jobs"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newAuditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "audit-roles",
		Short: "List active users whose role list disagrees with their memberships",
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

			job := jobs.NewRoleAuditJob(repositories.NewUserRepository(e.orm), svcs.Memberships, nil)
			result, err := job.Run(context.Background())
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.Style().Options.DrawBorder = false
			tw.Style().Options.SeparateColumns = false
			tw.Style().Options.SeparateHeader = false
			tw.AppendHeader(table.Row{"DRIFTED USER"})
			for _, id := range result.Drifted {
				tw.AppendRow(table.Row{id})
			}
			tw.AppendFooter(table.Row{len(result.Drifted)})
			cmd.Printf("%s\nscanned %d active users\n", tw.Render(), result.Scanned)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newAuditCommand())
}
