package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cookatlas/backend/config"
	"github.com/cookatlas/backend/internal/database"
	"github.com/cookatlas/backend/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dsn, dir string

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply or roll back the database schema",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string (defaults to the DB_* settings)")
	root.PersistentFlags().StringVar(&dir, "dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")

	open := func() (*gorm.DB, *zap.Logger, string, func(), error) {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, nil, "", nil, err
		}
		logger := logging.Must(cfg.LogLevel, cfg.Environment.ConsoleLogs())
		if dir == "" {
			dir = cfg.MigrationsDir
		}

		var db *gorm.DB
		if cfg.DBDriver == "sqlite" {
			db, err = database.Open(cfg, logger)
		} else {
			if dsn == "" {
				dsn = cfg.DSN()
			}
			var sqlDB *sql.DB
			sqlDB, err = sql.Open("postgres", dsn)
			if err == nil {
				db, err = database.FromSQL(sqlDB, logger)
			}
		}
		if err != nil {
			return nil, nil, "", nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		cleanup := func() {
			_ = database.Close(db)
			_ = logger.Sync()
		}
		return db, logger, dir, cleanup, nil
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, logger, dir, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := database.RunMigrations(db, dir, logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All migrations applied successfully.")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "rollback",
		Short: "Roll back the last applied migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, logger, dir, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()

			name, err := database.Rollback(db, dir, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully rolled back migration: %s\n", name)
			return nil
		},
	})

	return root
}
