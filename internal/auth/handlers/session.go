package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"starforge/internal/auth"
	"starforge/internal/shared/cookies"
	"starforge/internal/shared/errors"
	"starforge/internal/shared/response"
)

type SessionResponse struct {
	Subject   string    `json:"subject"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionHandler turns a bearer token into an auth cookie for browser
// clients, and clears it again on logout.
type SessionHandler struct {
	tokens  *auth.TokenIssuer
	cookies cookies.Settings
}

func NewSessionHandler(tokens *auth.TokenIssuer, settings cookies.Settings) *SessionHandler {
	return &SessionHandler{tokens: tokens, cookies: settings}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "session_login", "remote_addr", r.RemoteAddr)

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		response.Error(w, r, logger, errors.Unauthorized("bearer token required"))
		return
	}
	token = strings.TrimSpace(token)

	claims, err := h.tokens.ValidateJWT(token)
	if err != nil {
		logger.Debug("Token rejected", "error", err)
		response.Error(w, r, logger, errors.Unauthorized("invalid token"))
		return
	}

	h.cookies.SetAuthCookie(w, token)
	logger.Info("Session started", "subject", claims.Subject, "role", claims.Role)

	resp := SessionResponse{Subject: claims.Subject, Role: claims.Role}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	response.Success(w, http.StatusOK, resp)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "session_logout", "remote_addr", r.RemoteAddr)

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	h.cookies.ClearAuthCookie(w)
	logger.Debug("Session cleared")

	response.NoContent(w)
}
