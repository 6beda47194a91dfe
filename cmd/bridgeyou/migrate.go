package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bridgeyou/search/internal/db/postgres"
	logpkg "github.com/bridgeyou/search/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(_ *cobra.Command, _ []string) error {
		env, cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		if err := postgres.Migrate(cfg.Database.DSN); err != nil {
			logger.Error("Migration failed", zap.Error(err))
			return err
		}
		logger.Info("Migrations applied")
		return nil
	},
}
