package auth

import (
	"github.com/Adedunmol/questino/api/tokens"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func SetupRoutes(r *chi.Mux, store Store, tokenService tokens.TokenService, googleClientID string, logger *zap.Logger) {

	authRouter := chi.NewRouter()

	handler := Handler{
		Store:        store,
		Token:        tokenService,
		VerifyGoogle: NewGoogleVerifier(googleClientID),
		Logger:       logger.Named("auth"),
	}

	authRouter.Route("/auth", func(authRouter chi.Router) {
		authRouter.Post("/register", handler.CreateUserHandler)
		authRouter.Post("/login", handler.LoginUserHandler)
		authRouter.Post("/logout", handler.LogoutUserHandler)
		authRouter.Post("/guest", handler.GuestSessionHandler)
		authRouter.Post("/google", handler.GoogleSignInHandler)
		authRouter.Get("/refresh-token", handler.RefreshTokenHandler)
	})

	r.Mount("/users", authRouter)
}
