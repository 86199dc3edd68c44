package surveys

import (
	"github.com/Adedunmol/questino/api/middlewares"
	"github.com/Adedunmol/questino/api/tokens"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SetupRoutes mounts survey management under /surveys. Other packages that
// serve per-survey resources register them through extensions so they share
// the /surveys prefix.
func SetupRoutes(r *chi.Mux, store Store, tokenService tokens.TokenService, logger *zap.Logger, publicBaseURL string, extensions ...func(chi.Router)) {

	surveysRouter := chi.NewRouter()

	handler := Handler{
		Store:         store,
		Logger:        logger.Named("surveys"),
		PublicBaseURL: publicBaseURL,
	}

	surveysRouter.Group(func(r chi.Router) {
		r.Use(middlewares.RequireIdentity(tokenService))

		// Survey management
		r.Post("/", handler.CreateSurveyHandler)
		r.Get("/", handler.ListMySurveysHandler)
		r.Post("/bulk-delete", handler.BulkDeleteSurveysHandler)
		r.Post("/duplicate", handler.DuplicateSurveysHandler)
		r.Get("/{surveyID}", handler.GetSurveyHandler)
		r.Patch("/{surveyID}", handler.UpdateSurveyHandler)
		r.Delete("/{surveyID}", handler.DeleteSurveyHandler)
		r.Get("/{surveyID}/qr", handler.QRCodeHandler)

		// Question management
		r.Post("/{surveyID}/questions", handler.CreateQuestionHandler)
		r.Get("/{surveyID}/questions", handler.ListQuestionsHandler)
		r.Patch("/{surveyID}/questions/{questionID}", handler.UpdateQuestionHandler)
		r.Delete("/{surveyID}/questions/{questionID}", handler.DeleteQuestionHandler)
	})

	for _, extend := range extensions {
		surveysRouter.Group(extend)
	}

	r.Mount("/surveys", surveysRouter)
}
