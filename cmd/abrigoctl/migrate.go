package main

import (
	"fmt"

	"abrigo/backend/internal/db/migrate"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the embedded SQL migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := migrate.Run(e.cfg.DSN(), args[0]); err != nil {
				return fmt.Errorf("migrate %s: %w", args[0], err)
			}
			cmd.Printf("migrations %s: done\n", args[0])
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newMigrateCommand())
}
