package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Adedunmol/questino/api/surveys"
	"github.com/Adedunmol/questino/database"
	"github.com/spf13/cobra"
)

var dryRun bool

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Default missing survey visibility flags to true",
	Long: `Sets is_public and stats_public to true on surveys where either is
NULL, logging each change. Use --dry-run to preview without writing.`,
	RunE: runBackfill,
}

func init() {
	backfillCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the changes without writing them")
}

func runBackfill(cmd *cobra.Command, args []string) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer pool.Close()

	_, err = surveys.BackfillVisibility(ctx, database.New(pool), dryRun, logger.Named("backfill"))
	return err
}
