package list_laboratories

import (
	"net/http"

	"github.com/m04kA/SMC-LabReservationService/internal/api/handlers"
)

type Handler struct {
	service LaboratoryService
	logger  Logger
}

func NewHandler(service LaboratoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/laboratories
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /laboratories - Failed to list laboratories: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
