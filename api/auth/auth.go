package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Adedunmol/questino/api/custom_errors"
	"github.com/Adedunmol/questino/api/identity"
	"github.com/Adedunmol/questino/api/jsonutil"
	"github.com/Adedunmol/questino/api/tokens"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/idtoken"
)

const refreshCookieName = "refresh_token"

// GoogleVerifier validates a Google ID token and returns its payload.
type GoogleVerifier func(ctx context.Context, idToken string) (*idtoken.Payload, error)

// NewGoogleVerifier checks tokens against the given OAuth client ID.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return func(ctx context.Context, idToken string) (*idtoken.Payload, error) {
		if clientID == "" {
			return nil, errors.New("google sign-in is not configured")
		}
		return idtoken.Validate(ctx, idToken, clientID)
	}
}

type Handler struct {
	Store        Store
	Token        tokens.TokenService
	VerifyGoogle GoogleVerifier
	Logger       *zap.Logger
}

func (h *Handler) CreateUserHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	data, err := jsonutil.UnmarshalJsonResponse[CreateUserBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	hashedPassword, err := h.Token.HashPassword(data.Password)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	user, err := h.Store.CreateAccount(ctx, CreateAccountParams{
		Email:        strings.ToLower(data.Email),
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrConflict) {
			response := jsonutil.Response{Status: "error", Message: "an account with this email already exists"}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
			return
		}
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	h.startSession(responseWriter, request, user, http.StatusCreated, "User created successfully")
}

func (h *Handler) LoginUserHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	data, err := jsonutil.UnmarshalJsonResponse[LoginUserBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	user, err := h.Store.FindUserByEmail(ctx, strings.ToLower(data.Email))
	if err != nil {
		if errors.Is(err, custom_errors.ErrNotFound) {
			response := jsonutil.Response{Status: "error", Message: "invalid credentials"}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
			return
		}
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	if user.PasswordHash == "" || !h.Token.ComparePasswords(user.PasswordHash, data.Password) {
		response := jsonutil.Response{Status: "error", Message: "invalid credentials"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	h.startSession(responseWriter, request, user, http.StatusOK, "User logged in")
}

// GuestSessionHandler signs in a guest identified by a device key. A key is
// minted when the client has none yet.
func (h *Handler) GuestSessionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	var data GuestSessionBody
	if request.ContentLength != 0 {
		body, err := jsonutil.UnmarshalJsonResponse[GuestSessionBody](request)
		if err != nil {
			response := jsonutil.Response{Status: "error", Message: err.Error()}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
			return
		}
		data = body
	}

	deviceKey := strings.TrimSpace(data.DeviceKey)
	if deviceKey == "" {
		deviceKey = uuid.NewString()
	}

	user, err := h.Store.GetOrCreateGuest(ctx, deviceKey)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	h.startSession(responseWriter, request, user, http.StatusOK, "Guest session started")
}

func (h *Handler) LogoutUserHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	refreshToken, err := request.Cookie(refreshCookieName)
	if err != nil {
		response := jsonutil.Response{Status: "success", Message: "User logged out successfully"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
		return
	}

	http.SetCookie(responseWriter, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	if err := h.Store.DeleteRefreshToken(ctx, refreshToken.Value); err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{Status: "success", Message: "User logged out successfully"}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) RefreshTokenHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	oldRefreshToken, err := request.Cookie(refreshCookieName)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	if _, err = h.Token.DecodeToken(oldRefreshToken.Value); err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	user, err := h.Store.FindUserWithRefreshToken(ctx, oldRefreshToken.Value)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: "invalid token"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	accessToken, newRefreshToken, err := h.Token.GenerateToken(identityFor(user))
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	err = h.Store.RotateRefreshToken(ctx, oldRefreshToken.Value, newRefreshToken)
	if err != nil {
		if errors.Is(err, custom_errors.ErrNotFound) {
			response := jsonutil.Response{Status: "error", Message: "invalid token"}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
			return
		}
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	setRefreshCookie(responseWriter, newRefreshToken)

	response := jsonutil.Response{
		Status:  "success",
		Message: "Access token refreshed successfully",
		Data:    map[string]interface{}{"token": accessToken, "expiration": time.Now().Add(tokens.AccessTokenTTL)},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// GoogleSignInHandler signs in with a Google ID token, creating the account
// on first use.
func (h *Handler) GoogleSignInHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	data, err := jsonutil.UnmarshalJsonResponse[GoogleAuthRequestBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	payload, err := h.VerifyGoogle(ctx, data.IDToken)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		response := jsonutil.Response{Status: "error", Message: "google account has no email"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}
	if !emailVerified(payload.Claims) {
		response := jsonutil.Response{Status: "error", Message: "google account email is not verified"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}
	email = strings.ToLower(email)

	user, err := h.Store.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		h.startSession(responseWriter, request, user, http.StatusOK, "User logged in")
		return
	case !errors.Is(err, custom_errors.ErrNotFound):
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	user, err = h.Store.CreateAccount(ctx, CreateAccountParams{Email: email, GoogleID: payload.Subject})
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, custom_errors.HTTPStatus(err))
		return
	}

	h.startSession(responseWriter, request, user, http.StatusCreated, "User created successfully")
}

// startSession issues tokens for user, stores the refresh token and sets it
// as a cookie.
func (h *Handler) startSession(responseWriter http.ResponseWriter, request *http.Request, user User, status int, message string) {
	accessToken, refreshToken, err := h.Token.GenerateToken(identityFor(user))
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	if err := h.Store.SaveRefreshToken(request.Context(), user.ID, refreshToken); err != nil {
		h.Logger.Error("error saving refresh token", zap.String("user_id", user.ID), zap.Error(err))
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	setRefreshCookie(responseWriter, refreshToken)

	response := jsonutil.Response{
		Status:  "success",
		Message: message,
		Data:    SessionResponse{User: user, Token: accessToken},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, status)
}

// emailVerified reads the email_verified claim, which Google sends as a bool
// and some token encoders as the string "true".
func emailVerified(claims map[string]interface{}) bool {
	switch verified := claims["email_verified"].(type) {
	case bool:
		return verified
	case string:
		return strings.EqualFold(verified, "true")
	default:
		return false
	}
}

func identityFor(user User) identity.Identity {
	if identity.Kind(user.Kind) == identity.KindGuest {
		return identity.Guest(user.ID, user.DeviceKey)
	}
	return identity.Account(user.ID, user.Email)
}

func setRefreshCookie(responseWriter http.ResponseWriter, refreshToken string) {
	http.SetCookie(responseWriter, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		Expires:  time.Now().Add(tokens.RefreshTokenTTL),
		MaxAge:   int(tokens.RefreshTokenTTL.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
