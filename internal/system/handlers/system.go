package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"starforge/internal/shared/errors"
	"starforge/internal/shared/response"
	"starforge/internal/system"
)

const maxRequestBytes = 1 << 20 // 1 MB

type SystemHandler struct {
	service *system.Service
}

func NewSystemHandler(service *system.Service) *SystemHandler {
	return &SystemHandler{service: service}
}

func (h *SystemHandler) PreviewSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "preview_system")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	req, ok := decodeRequest(w, r, logger)
	if !ok {
		return
	}

	sys, err := h.service.Preview(r.Context(), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, sys)
}

func (h *SystemHandler) CreateSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "create_system")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	req, ok := decodeRequest(w, r, logger)
	if !ok {
		return
	}

	sys, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, sys)
}

func (h *SystemHandler) GetSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_system")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id := r.PathValue("id")
	if id == "" {
		response.Error(w, r, logger, errors.Validation("system ID is required"))
		return
	}

	sys, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, sys)
}

func (h *SystemHandler) ListSystems(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_systems")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid limit", err))
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid offset", err))
		return
	}

	summaries, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, summaries)
}

func (h *SystemHandler) DeleteSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_system")

	if r.Method != http.MethodDelete {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id := r.PathValue("id")
	if id == "" {
		response.Error(w, r, logger, errors.Validation("system ID is required"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.NoContent(w)
}

// CatalogSystem previews a system around the catalog star at {index}. An
// optional seed query parameter makes the result reproducible.
func (h *SystemHandler) CatalogSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "catalog_system")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid catalog index", err))
		return
	}

	var seed *int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid seed", err))
			return
		}
		seed = &v
	}

	sys, err := h.service.PreviewFromCatalog(r.Context(), index, seed)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, sys)
}

func decodeRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (system.Request, bool) {
	var req system.Request

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return system.Request{}, false
	}
	return req, true
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
