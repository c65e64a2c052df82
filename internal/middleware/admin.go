package middleware

import (
	"log/slog"
	"net/http"

	"starforge/internal/auth"
	"starforge/internal/shared/errors"
	"starforge/internal/shared/response"
)

// RequireRole lets a request through only when JWTMiddleware has stored
// claims carrying role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With("middleware", "role", "required_role", role)

			claims := GetClaimsFromContext(r)
			switch {
			case claims == nil:
				response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			case claims.Role != role:
				response.Error(w, r, logger.With("subject", claims.Subject, "role", claims.Role),
					errors.Forbidden(role+" access required"))
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func AdminMiddleware(next http.Handler) http.Handler {
	return RequireRole(auth.RoleAdmin)(next)
}

// RequireAdmin wraps a handler so only valid admin tokens reach it.
func RequireAdmin(tokens *auth.TokenIssuer, next http.HandlerFunc) http.Handler {
	return JWTMiddleware(tokens)(AdminMiddleware(next))
}
