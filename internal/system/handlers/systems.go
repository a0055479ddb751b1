package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"planet-randomizer/internal/shared/errors"
	"planet-randomizer/internal/shared/response"
	"planet-randomizer/internal/system"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type SystemHandler struct {
	service *system.Service
}

func NewSystemHandler(service *system.Service) *SystemHandler {
	return &SystemHandler{service: service}
}

type CreateSystemRequest struct {
	Seed *int64 `json:"seed"`
}

func (h *SystemHandler) CreateSystem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_system")

	var req CreateSystemRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}
	if req.Seed == nil {
		response.Error(w, r, logger, errors.Validation("seed is required"))
		return
	}

	record, err := h.service.Generate(ctx, *req.Seed)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, record)
}

func (h *SystemHandler) GetSystems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_systems")

	limit, offset, err := pagination(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	records, err := h.service.List(ctx, limit, offset)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if records == nil {
		records = []system.Record{}
	}

	response.Success(w, http.StatusOK, records)
}

func (h *SystemHandler) GetSystem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_system")

	record, err := h.service.Get(ctx, r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, record)
}

func (h *SystemHandler) GetScience(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_science")

	entries, err := h.service.Science(ctx, r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, entries)
}

func (h *SystemHandler) DeleteSystem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "delete_system")

	if err := h.service.Delete(ctx, r.PathValue("id")); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusNoContent, nil)
}

// PreviewSystem generates a system for ?seed= without storing it.
func (h *SystemHandler) PreviewSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "preview_system")

	seed, err := seedParam(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	sys, err := h.service.Preview(seed, nil)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, sys)
}

func seedParam(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return 0, errors.Validation("seed query parameter is required")
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.WrapValidation("invalid seed format", err)
	}
	return seed, nil
}

func pagination(r *http.Request) (limit, offset int, err error) {
	limit = defaultListLimit
	query := r.URL.Query()

	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, errors.Validationf("invalid limit %q", raw)
		}
		limit = min(limit, maxListLimit)
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, errors.Validationf("invalid offset %q", raw)
		}
	}

	return limit, offset, nil
}
