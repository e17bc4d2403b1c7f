package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

// withDB opens the configured database for the duration of fn.
func withDB(fn func(db *gorm.DB) error) error {
	db, err := database.Connect()
	if err != nil {
		return err
	}
	defer database.Close(db)
	return fn(db)
}

// storefront migrate
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run all pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Running migrations…")
				n, err := migration.NewDefault(db, out).Run()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "✅  %d migration(s) applied\n", n)
				return nil
			})
		},
	}
}

// storefront migrate:rollback
func migrateRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:rollback",
		Short: "Rollback the last batch of migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Rolling back last batch…")
				n, err := migration.NewDefault(db, out).Rollback()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "✅  %d migration(s) rolled back\n", n)
				return nil
			})
		},
	}
}

// storefront migrate:status
func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:status",
		Short: "Show the status of each migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				_, err := migration.NewDefault(db, cmd.OutOrStdout()).Status()
				return err
			})
		},
	}
}

// storefront seed
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Run all database seeders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Running seeders…")
				return seeders.RunAll(cmd.Context(), db, out)
			})
		},
	}
}
