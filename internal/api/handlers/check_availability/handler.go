package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LabReservationService/internal/api/handlers"
	checkAvailabilityUC "github.com/m04kA/SMC-LabReservationService/internal/usecase/check_availability"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/availability
// Query params: date, block, subBlock и/или blockType, weekday (игнорируется)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /reservations/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailabilityUC.ErrInvalidInput):
			h.logger.Warn("GET /reservations/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err, checkAvailabilityUC.ErrInvalidInput))

		default:
			h.logger.Error("GET /reservations/availability - Failed to check availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
