package handler

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/sag-insper/schedule-api/internal/apperror"
	"github.com/sag-insper/schedule-api/internal/auth"
)

// Token is the response body of both token-issuing endpoints.
type Token struct {
	Token string `json:"token"`
}

// Password is the login request body. The client sends the SHA-256
// digest of the password, never the plaintext.
type Password struct {
	HashedPassword string `json:"hashed_password"`
}

// AuthHandler serves the login and temp-token endpoints.
type AuthHandler struct {
	tokens         *auth.TokenService
	hashedPassword string
	logger         *slog.Logger
}

// NewAuthHandler creates an AuthHandler. hashedPassword is the
// configured admin credential (hex digest or bcrypt hash).
func NewAuthHandler(tokens *auth.TokenService, hashedPassword string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		tokens:         tokens,
		hashedPassword: hashedPassword,
		logger:         logger,
	}
}

// HandleLogin exchanges the admin password for a long-lived admin
// token.
//
// POST /auth/login — 200 with {token}, 403 on an incorrect password.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var password Password
	if err := json.NewDecoder(r.Body).Decode(&password); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if err := auth.VerifyPassword(h.hashedPassword, password.HashedPassword); err != nil {
		h.logger.Warn("login rejected")
		writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(auth.DomainAdmin)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("admin token issued")
	writeJSON(w, http.StatusOK, Token{Token: token})
}

// HandleTemp issues a short-lived temp token. The route runs behind
// RequireAuth; only admin-domain callers may mint temp tokens.
//
// GET /auth/temp — 200 with {token}, 403 otherwise.
func (h *AuthHandler) HandleTemp(w http.ResponseWriter, r *http.Request) {
	domain, ok := auth.DomainFromContext(r.Context())
	if !ok || domain != auth.DomainAdmin {
		writeError(w, apperror.Unauthorized("this action is only allowed for admins"))
		return
	}

	token, err := h.tokens.Issue(auth.DomainTemp)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("temp token issued")
	writeJSON(w, http.StatusOK, Token{Token: token})
}
