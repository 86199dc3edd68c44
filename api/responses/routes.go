package responses

import (
	"github.com/Adedunmol/questino/api/middlewares"
	"github.com/Adedunmol/questino/api/tokens"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the respondent facing routes. The owner listing lives
// under /surveys and is registered through SurveyRoutes.
func SetupRoutes(r *chi.Mux, handler *Handler, tokenService tokens.TokenService) {

	runnerRouter := chi.NewRouter()
	runnerRouter.Group(func(r chi.Router) {
		r.Use(middlewares.OptionalIdentity(tokenService))

		r.Get("/{slug}", handler.GetRunnerHandler)
		r.Post("/{slug}/responses", handler.SubmitResponseHandler)
	})

	responsesRouter := chi.NewRouter()
	responsesRouter.Group(func(r chi.Router) {
		r.Use(middlewares.OptionalIdentity(tokenService))

		r.Get("/{responseID}/analysis", handler.GetAnalysisHandler)
	})

	r.Mount("/s", runnerRouter)
	r.Mount("/responses", responsesRouter)
}

func SurveyRoutes(handler *Handler, tokenService tokens.TokenService) func(chi.Router) {
	return func(r chi.Router) {
		r.Use(middlewares.RequireIdentity(tokenService))

		r.Get("/{surveyID}/responses", handler.ListSurveyResponsesHandler)
	}
}
