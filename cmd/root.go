package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Adedunmol/questino/api/analysis"
	"github.com/Adedunmol/questino/api/stats"
	"github.com/Adedunmol/questino/config"
	"github.com/Adedunmol/questino/logging"
	"github.com/Adedunmol/questino/queue"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose bool

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "questino",
	Short: "questino - surveys with emotion analysis of open answers",
	Long: `questino serves the survey API: survey and question management,
public response collection, per-answer emotion analysis and survey stats.

Run "questino serve" to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(backfillCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newAnalyzer() analysis.Analyzer {
	if cfg.WatsonAPIKey == "" || cfg.WatsonURL == "" {
		logger.Warn("WATSON_API_KEY or WATSON_URL not set, emotion analysis requests will fail")
	}
	return analysis.NewWatsonClient(cfg.WatsonURL, cfg.WatsonAPIKey, cfg.NLUTimeout)
}

// newInsightsGenerator returns nil when Gemini is not configured so the
// insights endpoint falls back to its unavailable message.
func newInsightsGenerator(ctx context.Context) stats.Generator {
	if cfg.GeminiAPIKey == "" {
		return nil
	}
	generator, err := stats.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Warn("error creating gemini client", zap.Error(err))
		return nil
	}
	return generator
}

// newWorker builds an asynq server with the emotion analysis handler registered.
func newWorker(analysisService *analysis.Service, concurrency int) (*queue.Server, error) {
	opt, err := queue.RedisOpt(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	server := queue.NewServer(opt, concurrency, logging.NewAsynqLogger(logger.Named("worker")))
	server.Handle(queue.TypeEmotionAnalysis, analysis.NewTaskHandler(analysisService))
	return server, nil
}
