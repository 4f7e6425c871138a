package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lunaword/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			if err := database.Migrate(cmd.Context(), a.db); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Migrated the %s database\n", cfg.Database.Driver)
			return err
		},
	}
}
