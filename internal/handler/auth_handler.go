package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"aquaflow/internal/auth"
	"aquaflow/internal/middleware"
	"aquaflow/internal/model"
	"aquaflow/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles registration, login and the session-scoped account
// endpoints.
type AuthHandler struct {
	accounts service.AccountService
	sessions *auth.Sessions
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(accounts service.AccountService, sessions *auth.Sessions, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/v1/auth/register requests. A successful
// registration also opens a session.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user, err := h.accounts.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.SessionResponse{Token: token, User: user})
}

// Login handles POST /api/v1/auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.UserID, req.Password)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.SessionResponse{Token: token, User: user})
}

// Logout handles POST /api/v1/auth/logout requests, invalidating the
// presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		h.sessions.Revoke(token)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me requests.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/v1/auth/me requests.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	updated, err := h.accounts.UpdateProfile(r.Context(), user.ID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteAccount handles DELETE /api/v1/account requests. Removal cascades to
// the account's records and every open session.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	if err := h.accounts.DeleteAccount(r.Context(), user.ID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	h.sessions.RevokeUser(user.ID)
	w.WriteHeader(http.StatusNoContent)
}
