package server

import (
	"log/slog"
	"net/http"

	"starforge/internal/auth"
	authHandlers "starforge/internal/auth/handlers"
	"starforge/internal/middleware"
	serverHandlers "starforge/internal/server/handlers"
	"starforge/internal/shared/cookies"
	"starforge/internal/system"
	systemHandlers "starforge/internal/system/handlers"
)

type Routes struct {
	systemService *system.Service
	tokens        *auth.TokenIssuer
	cookies       cookies.Settings
	rateLimiter   *middleware.RateLimiter
	healthChecks  []serverHandlers.Check
	logger        *slog.Logger
}

func NewRoutes(systemService *system.Service, tokens *auth.TokenIssuer, cookieSettings cookies.Settings, rateLimiter *middleware.RateLimiter, healthChecks []serverHandlers.Check, logger *slog.Logger) *Routes {
	return &Routes{
		systemService: systemService,
		tokens:        tokens,
		cookies:       cookieSettings,
		rateLimiter:   rateLimiter,
		healthChecks:  healthChecks,
		logger:        logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.healthChecks...)
	systemHandler := systemHandlers.NewSystemHandler(r.systemService)
	sessionHandler := authHandlers.NewSessionHandler(r.tokens, r.cookies)

	limited := func(h http.HandlerFunc) http.Handler {
		return r.rateLimiter.Middleware(h)
	}

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.HandleFunc("GET /api/systems", systemHandler.ListSystems)
	mux.HandleFunc("GET /api/systems/{id}", systemHandler.GetSystem)

	// Generation endpoints (rate limited)
	mux.Handle("POST /api/systems/preview", limited(systemHandler.PreviewSystem))
	mux.Handle("GET /api/catalog/{index}/system", limited(systemHandler.CatalogSystem))

	// Admin-only endpoints (authenticated + admin role)
	mux.Handle("POST /api/systems", middleware.RequireAdmin(r.tokens, systemHandler.CreateSystem))
	mux.Handle("DELETE /api/systems/{id}", middleware.RequireAdmin(r.tokens, systemHandler.DeleteSystem))

	// Session endpoints
	mux.HandleFunc("/auth/session", sessionHandler.Login)
	mux.HandleFunc("/auth/logout", sessionHandler.Logout)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/systems", "/api/systems/{id}"},
		"rate_limited_endpoints", []string{"POST /api/systems/preview", "/api/catalog/{index}/system"},
		"admin_endpoints", []string{"POST /api/systems", "DELETE /api/systems/{id}"},
		"auth_endpoints", []string{"/auth/session", "/auth/logout"},
	)

	return mux
}
