package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adedunmol/questino/api"
	"github.com/Adedunmol/questino/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var concurrency int

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the emotion analysis worker",
	Long: `Consumes analysis tasks enqueued on response submission, calls the
NLU service for each answer and stores the resulting analysis record.`,
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Number of concurrent tasks (default: WORKER_CONCURRENCY or 5)")
}

func runWorker(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.WorkerConcurrency = concurrency
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer pool.Close()

	analysisService := api.NewAnalysisService(database.New(pool), newAnalyzer(), logger)
	worker, err := newWorker(analysisService, cfg.WorkerConcurrency)
	if err != nil {
		return err
	}

	logger.Info("starting analysis worker", zap.Int("concurrency", cfg.WorkerConcurrency))
	if err := worker.Run(ctx); err != nil {
		return err
	}

	logger.Info("worker exited properly")
	return nil
}
