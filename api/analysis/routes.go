package analysis

import (
	"github.com/Adedunmol/questino/api/middlewares"
	"github.com/Adedunmol/questino/api/tokens"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux, service *Service, tokenService tokens.TokenService) {

	functionsRouter := chi.NewRouter()

	handler := Handler{Service: service}

	functionsRouter.Group(func(r chi.Router) {
		r.Use(middlewares.RequireIdentity(tokenService))

		r.Post("/analyze-emotion", handler.AnalyzeEmotion)
	})

	r.Mount("/functions", functionsRouter)
}
