package handlers

import (
	"log/slog"
	"net/http"

	"planet-randomizer/internal/shared/response"
	"planet-randomizer/internal/system"
	"planet-randomizer/internal/world"
)

type WorldHandler struct {
	service *system.Service
}

func NewWorldHandler(service *system.Service) *WorldHandler {
	return &WorldHandler{service: service}
}

type WorldResponse struct {
	Bodies []world.Body `json:"bodies"`
}

type ApplyResponse struct {
	Applied int      `json:"applied"`
	Missing []string `json:"missing"`
}

func newApplyResponse(report world.ApplyReport) ApplyResponse {
	return ApplyResponse{Applied: report.Applied, Missing: report.Missing()}
}

func (h *WorldHandler) GetWorld(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, WorldResponse{Bodies: h.service.World()})
}

// ApplySystem aligns the live world with a stored system. Lookup failures
// are reported in the body, the rest of the system is still applied.
func (h *WorldHandler) ApplySystem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "apply_system")

	report, err := h.service.Apply(ctx, r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, newApplyResponse(report))
}

func (h *WorldHandler) RestoreWorld(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, newApplyResponse(h.service.Restore()))
}
