package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Adedunmol/questino/api/analysis"
	"github.com/Adedunmol/questino/api/auth"
	"github.com/Adedunmol/questino/api/jsonutil"
	"github.com/Adedunmol/questino/api/middlewares"
	"github.com/Adedunmol/questino/api/responses"
	"github.com/Adedunmol/questino/api/stats"
	"github.com/Adedunmol/questino/api/surveys"
	"github.com/Adedunmol/questino/api/tokens"
	"github.com/Adedunmol/questino/config"
	"github.com/Adedunmol/questino/database"
	"github.com/Adedunmol/questino/queue"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Dependencies struct {
	Config   config.Config
	Pool     *pgxpool.Pool
	Queue    queue.Queue
	Broker   Pinger
	Analyzer analysis.Analyzer
	Insights stats.Generator
	Logger   *zap.Logger
}

// NewAnalysisService builds the analysis service shared by the HTTP
// function endpoint and the queue worker.
func NewAnalysisService(queries *database.Queries, analyzer analysis.Analyzer, logger *zap.Logger) *analysis.Service {
	return analysis.NewService(analyzer, analysis.NewAnalysisStore(queries), logger.Named("analysis"))
}

func Routes(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middlewares.RequestLogger(deps.Logger))
	r.Use(middleware.CleanPath)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/check", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok", "queue": "ok"}
		status := http.StatusOK
		if err := deps.Pool.Ping(ctx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if deps.Broker != nil {
			if err := deps.Broker.Ping(ctx); err != nil {
				checks["queue"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}

		jsonutil.WriteJSONResponse(w, jsonutil.Response{Status: "success", Message: "hello from questino", Data: checks}, status)
	})

	queries := database.New(deps.Pool)
	tokenService := tokens.NewTokenService(deps.Config.SecretKey)

	surveyStore := surveys.NewSurveyStore(queries, database.NewDBTransactor(deps.Pool))
	responseStore := responses.NewResponseStore(queries)
	analysisStore := analysis.NewAnalysisStore(queries)
	analysisService := NewAnalysisService(queries, deps.Analyzer, deps.Logger)

	responseHandler := &responses.Handler{
		Store:         responseStore,
		Surveys:       surveyStore,
		Analysis:      analysisStore,
		Poller:        analysis.NewPoller(analysisStore, deps.Config.AnalysisPollInterval, deps.Config.AnalysisPollTimeout),
		Queue:         deps.Queue,
		Logger:        deps.Logger.Named("responses"),
		MinTextLength: deps.Config.NLUMinTextLength,
	}

	statsHandler := &stats.Handler{
		Surveys:   surveyStore,
		Responses: responseStore,
		Analysis:  analysisStore,
		Insights:  stats.NewInsightsService(deps.Insights, deps.Logger),
		Logger:    deps.Logger.Named("stats"),
	}

	surveys.SetupRoutes(r, surveyStore, tokenService, deps.Logger, deps.Config.PublicBaseURL,
		stats.SurveyRoutes(statsHandler, tokenService),
		responses.SurveyRoutes(responseHandler, tokenService),
	)
	responses.SetupRoutes(r, responseHandler, tokenService)
	stats.SetupRoutes(r, statsHandler)
	analysis.SetupRoutes(r, analysisService, tokenService)
	auth.SetupRoutes(r, auth.NewUserStore(queries), tokenService, deps.Config.GoogleClientID, deps.Logger)

	return r
}
