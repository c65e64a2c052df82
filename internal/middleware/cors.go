package middleware

import (
	"log/slog"
	"net/http"

	"starforge/internal/shared/config"

	"github.com/rs/cors"
)

// corsMaxAge caches preflight results in the browser, in seconds.
const corsMaxAge = 600

// NewCORS builds the CORS layer for the browser client. Credentials are
// allowed so the session cookie reaches the admin endpoints.
func NewCORS(cfg config.FrontendConfig) func(http.Handler) http.Handler {
	methods := []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   methods,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
		Debug:            cfg.CORSDebug,
	})

	slog.Info("CORS configured",
		"component", "cors",
		"allowed_origins", cfg.AllowedOrigins,
		"allowed_methods", methods,
	)
	return c.Handler
}
