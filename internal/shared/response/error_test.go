package response

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"planet-randomizer/internal/shared/errors"
)

func TestError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
	}{
		{"not found", errors.NotFound("system not found"), http.StatusNotFound, "not_found"},
		{"validation", errors.Validation("bad seed"), http.StatusBadRequest, "validation"},
		{"unauthorized", errors.Unauthorized("no token"), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", errors.Forbidden("admin only"), http.StatusForbidden, "forbidden"},
		{"generation", errors.WrapGeneration("generation aborted", fmt.Errorf("axis reaches infinity")), http.StatusUnprocessableEntity, "generation_failed"},
		{"external", errors.WrapExternal("failed to ping Redis", fmt.Errorf("connection refused")), http.StatusServiceUnavailable, "external"},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/systems", nil)

			Error(rec, req, logger, tt.err)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != tt.wantType || body.Code != tt.wantCode {
				t.Errorf("body = %+v, want type %s code %d", body, tt.wantType, tt.wantCode)
			}
		})
	}
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, map[string]int{"seed": 5})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil || got["seed"] != 5 {
		t.Errorf("body = %v, err = %v", got, err)
	}
}

func TestStatusCodeUnknownType(t *testing.T) {
	if got := StatusCode(errors.ErrorType("teapot")); got != http.StatusInternalServerError {
		t.Errorf("StatusCode(unknown) = %d, want 500", got)
	}
}

func TestErrorWithMessage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/systems", nil)

	ErrorWithMessage(rec, req, logger, errors.WrapInternal("insert system", fmt.Errorf("disk full")), "could not store system")

	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "could not store system" || body.Code != http.StatusInternalServerError {
		t.Errorf("body = %+v", body)
	}
}
