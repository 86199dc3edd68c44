package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adedunmol/questino/api"
	"github.com/Adedunmol/questino/database"
	"github.com/Adedunmol/questino/queue"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	port       string
	withWorker bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the HTTP API. With --with-worker the emotion analysis worker
runs in the same process; otherwise run "questino worker" separately.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&port, "port", "", "Port to listen on (default: PORT or 8080)")
	serveCmd.Flags().BoolVar(&withWorker, "with-worker", false, "Also run the analysis worker in this process")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer pool.Close()

	q, err := queue.NewClient(cfg.RedisURL, logger)
	if err != nil {
		return fmt.Errorf("error creating new queue client: %w", err)
	}
	defer q.Close()

	analyzer := newAnalyzer()

	r := api.Routes(api.Dependencies{
		Config:   cfg,
		Pool:     pool,
		Queue:    q,
		Broker:   q,
		Analyzer: analyzer,
		Insights: newInsightsGenerator(ctx),
		Logger:   logger,
	})

	server := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: r}

	var background []func(context.Context) error
	if withWorker {
		analysisService := api.NewAnalysisService(database.New(pool), analyzer, logger)
		worker, err := newWorker(analysisService, cfg.WorkerConcurrency)
		if err != nil {
			return err
		}
		background = append(background, func(ctx context.Context) error {
			logger.Info("starting analysis worker", zap.Int("concurrency", cfg.WorkerConcurrency))
			return worker.Run(ctx)
		})
	}

	if err := serveUntilDone(ctx, server, 30*time.Second, background...); err != nil {
		return err
	}

	logger.Info("server exited properly")
	return nil
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// serveUntilDone runs the server and every background task until ctx is
// cancelled or one of them fails. It returns only after all of them have
// stopped, so deferred cleanup in the caller never races a running task.
func serveUntilDone(ctx context.Context, server httpServer, grace time.Duration, background ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting web server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting web server on port %s: %w", cfg.Port, err)
		}
		return nil
	})

	for _, task := range background {
		g.Go(func() error { return task(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()

		// gracefully shutdown the server after the grace period
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shut down: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("shutting down after failure", zap.Error(err))
		return err
	}
	return nil
}
