package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskline/taskline-api/internal/api/middleware"
	"github.com/taskline/taskline-api/internal/api/shared"
	"github.com/taskline/taskline-api/internal/config"
	"github.com/taskline/taskline-api/internal/domain"
	"github.com/taskline/taskline-api/internal/platform/logger"
	"github.com/taskline/taskline-api/internal/redact"
	"github.com/taskline/taskline-api/internal/service/auth"
	"github.com/taskline/taskline-api/internal/store"
)

// csrfCookieName is the anti-forgery cookie issued by the CSRF endpoint.
const csrfCookieName = "taskline_csrf"

// AuthHandler handles authentication-related API requests: password
// registration and login, Google identity-token login, profile, and the
// CSRF cookie endpoint. Successful logins establish a session by setting
// the session cookie.
type AuthHandler struct {
	userStore          store.UserStore
	jwtService         auth.JWTService
	passwordVerifier   auth.PasswordVerifier
	credentialVerifier auth.CredentialVerifier
	authConfig         *config.AuthConfig
	logger             *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	credentialVerifier auth.CredentialVerifier,
	authConfig *config.AuthConfig,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		userStore:          userStore,
		jwtService:         jwtService,
		passwordVerifier:   passwordVerifier,
		credentialVerifier: credentialVerifier,
		authConfig:         authConfig,
		logger:             logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles the POST /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	user, err := domain.NewUser(req.Email, req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid user data", err)
		return
	}

	hashed, err := auth.HashPassword(user.Password)
	if err != nil {
		log.Error("failed to hash password", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	if !h.establishSession(w, r, user) {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, LoginResponse{
		Message: "Registration successful",
		User:    userToResponse(user),
	})
}

// Login handles the POST /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to authenticate user", err)
		return
	}

	if user.HashedPassword == "" {
		// Google-only account; no password to check.
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !h.establishSession(w, r, user) {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    userToResponse(user),
	})
}

// GoogleLogin handles the POST /auth/google endpoint.
// The credential is accepted from the JSON body field "credential" or a
// form field of the same name. A verified credential looks up or creates
// the user by email and establishes a session.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	credential := extractCredential(r)
	if credential == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing credential")
		return
	}

	identity, err := h.credentialVerifier.Verify(r.Context(), credential)
	if err != nil {
		if errors.Is(err, auth.ErrMissingEmail) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "No email in token", err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid credential", err)
		return
	}

	user, created, err := h.userStore.GetOrCreateByEmail(r.Context(), identity.Email, identity.Name)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to look up user", err)
		return
	}

	if !h.establishSession(w, r, user) {
		return
	}

	log.Info("google login successful",
		slog.String("user_id", user.ID.String()),
		slog.Bool("created", created))
	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Message: "Google login successful",
		User:    userToResponse(user),
	})
}

// Profile handles the GET /auth/profile endpoint.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := middleware.GetUserID(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Logout handles the POST /auth/logout endpoint by clearing the session
// cookie. The token itself simply expires; there is no server-side
// revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "Logged out"})
}

// CSRFToken handles the GET /auth/csrf endpoint. It issues a random
// anti-forgery cookie and acknowledges, mirroring the double-submit
// pattern the frontend expects.
func (h *AuthHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Error("failed to generate CSRF token", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to issue CSRF token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    hex.EncodeToString(b),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"detail": "CSRF cookie set"})
}

// establishSession generates a session token for the user and sets the
// session cookie. Writes an error response and returns false on failure.
func (h *AuthHandler) establishSession(w http.ResponseWriter, r *http.Request, user *domain.User) bool {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate session token",
			"error", redact.Error(err),
			"user_id", user.ID.String())
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to establish session")
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.authConfig.TokenLifetimeMinutes * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}

// extractCredential pulls the identity credential from the JSON body or,
// failing that, from a form field of the same name.
func extractCredential(r *http.Request) string {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req GoogleLoginRequest
		if err := shared.DecodeJSON(r, &req); err == nil {
			return req.Credential
		}
		return ""
	}

	if err := r.ParseForm(); err != nil {
		return ""
	}
	return r.PostFormValue("credential")
}
