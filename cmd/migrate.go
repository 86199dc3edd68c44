package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Adedunmol/questino/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer pool.Close()

	applied, err := database.RunMigrations(ctx, pool)
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		logger.Info("database is up to date")
		return nil
	}
	logger.Info("migrations applied", zap.Strings("versions", applied))
	return nil
}
