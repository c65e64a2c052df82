package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data with the given status. A nil body writes the status only.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	if data == nil {
		w.WriteHeader(statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// headers are already out, nothing left to report an encode failure to
	_ = json.NewEncoder(w).Encode(data)
}

// Success is JSON for the 2xx path.
func Success(w http.ResponseWriter, statusCode int, data any) {
	JSON(w, statusCode, data)
}

// NoContent writes a bodiless 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
