package get_general_stats

import (
	"net/http"

	"github.com/m04kA/SMC-LabReservationService/internal/api/handlers"
)

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stats/general
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.General(r.Context())
	if err != nil {
		h.logger.Error("GET /stats/general - Failed to compute stats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
