package middlewares

import (
	"net/http"
	"strings"

	"github.com/Adedunmol/questino/api/identity"
	"github.com/Adedunmol/questino/api/jsonutil"
	"github.com/Adedunmol/questino/api/tokens"
)

// RequireIdentity rejects requests without a valid bearer token and stores the
// caller's identity in the request context.
func RequireIdentity(tokenService tokens.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")
			if authHeader == "" {
				response := jsonutil.Response{
					Status:  "error",
					Message: "authorization header required",
				}
				jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
				return
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				response := jsonutil.Response{
					Status:  "error",
					Message: "invalid authorization header format",
				}
				jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
				return
			}

			claims, err := tokenService.DecodeToken(tokenString)
			if err != nil || claims.UserID == "" {
				response := jsonutil.Response{
					Status:  "error",
					Message: "invalid or expired token",
				}
				jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
				return
			}

			ctx := identity.WithIdentity(request.Context(), claims.Identity())
			next.ServeHTTP(responseWriter, request.WithContext(ctx))
		})
	}
}

// OptionalIdentity attaches the caller's identity when a valid bearer token is
// present and otherwise lets the request through anonymously.
func OptionalIdentity(tokenService tokens.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
			tokenString, ok := bearerToken(request.Header.Get("Authorization"))
			if ok {
				if claims, err := tokenService.DecodeToken(tokenString); err == nil && claims.UserID != "" {
					request = request.WithContext(identity.WithIdentity(request.Context(), claims.Identity()))
				}
			}
			next.ServeHTTP(responseWriter, request)
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
