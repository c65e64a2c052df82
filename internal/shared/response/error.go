package response

import (
	"log/slog"
	"net/http"

	"starforge/internal/shared/errors"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var statusByType = map[errors.ErrorType]int{
	errors.ErrorTypeNotFound:         http.StatusNotFound,
	errors.ErrorTypeValidation:       http.StatusBadRequest,
	errors.ErrorTypeUnauthorized:     http.StatusUnauthorized,
	errors.ErrorTypeForbidden:        http.StatusForbidden,
	errors.ErrorTypeMethodNotAllowed: http.StatusMethodNotAllowed,
	errors.ErrorTypeUnprocessable:    http.StatusUnprocessableEntity,
	errors.ErrorTypeRateLimited:      http.StatusTooManyRequests,
	errors.ErrorTypeExternal:         http.StatusServiceUnavailable,
	errors.ErrorTypeInternal:         http.StatusInternalServerError,
}

// StatusCode returns the HTTP status for an error type.
func StatusCode(t errors.ErrorType) int {
	if code, ok := statusByType[t]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// Error logs err and writes it as an ErrorResponse. Handlers return errors up
// to this point instead of logging them themselves.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	errorType := errors.GetType(err)
	statusCode := StatusCode(errorType)

	logError(logger, r, err, errorType, statusCode)

	JSON(w, statusCode, ErrorResponse{
		Error:   string(errorType),
		Message: errors.PublicMessage(err),
		Code:    statusCode,
	})
}

func logError(logger *slog.Logger, r *http.Request, err error, errorType errors.ErrorType, statusCode int) {
	log := logger.With(
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", statusCode,
	)

	switch errorType {
	case errors.ErrorTypeNotFound:
		log.Debug("Resource not found", "error", err)
	case errors.ErrorTypeValidation, errors.ErrorTypeMethodNotAllowed:
		log.Debug("Rejected request", "error", err)
	case errors.ErrorTypeUnprocessable:
		log.Info("Generation could not be completed", "error", err)
	case errors.ErrorTypeUnauthorized, errors.ErrorTypeForbidden, errors.ErrorTypeRateLimited:
		log.Warn("Request denied", "error", err)
	case errors.ErrorTypeExternal:
		log.Error("Dependency failure", "error", err)
	default:
		log.Error("Internal server error", "error", err)
	}
}
