package cmd

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/metaview/metaview/internal/config"
)

// dbCmd represents the db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database schema operations",
	Long:  `Apply or roll back the database schema migrations.`,
}

// dbMigrateCmd applies pending migrations
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long:  `Apply all pending schema migrations from the migrations directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		source, _ := cmd.Flags().GetString("source")

		m, err := migrate.New(source, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
		defer m.Close()

		down, _ := cmd.Flags().GetBool("down")
		if down {
			if err := m.Steps(-1); err != nil {
				return fmt.Errorf("failed to roll back migration: %w", err)
			}
			fmt.Println("Rolled back one migration.")
			return nil
		}

		if err := m.Up(); err != nil {
			if err == migrate.ErrNoChange {
				fmt.Println("Database schema is up to date.")
				return nil
			}
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		fmt.Println("Migrations applied successfully.")
		return nil
	},
}

func init() {
	dbMigrateCmd.Flags().String("source", "file://migrations", "Migration source URL")
	dbMigrateCmd.Flags().Bool("down", false, "Roll back the most recent migration")

	dbCmd.AddCommand(dbMigrateCmd)
	rootCmd.AddCommand(dbCmd)
}
