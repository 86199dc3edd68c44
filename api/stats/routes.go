package stats

import (
	"github.com/Adedunmol/questino/api/middlewares"
	"github.com/Adedunmol/questino/api/tokens"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux, handler *Handler) {

	publicStatsRouter := chi.NewRouter()
	publicStatsRouter.Get("/{slug}", handler.GetPublicStatsHandler)

	r.Mount("/public-stats", publicStatsRouter)
}

// SurveyRoutes registers the per-survey stats routes under /surveys.
func SurveyRoutes(handler *Handler, tokenService tokens.TokenService) func(chi.Router) {
	return func(r chi.Router) {
		r.With(middlewares.OptionalIdentity(tokenService)).Get("/{surveyID}/stats", handler.GetSurveyStatsHandler)
		r.With(middlewares.RequireIdentity(tokenService)).Post("/{surveyID}/insights", handler.InsightsHandler)
	}
}
