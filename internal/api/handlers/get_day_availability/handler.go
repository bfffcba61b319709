package get_day_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LabReservationService/internal/api/handlers"
	getDayAvailabilityUC "github.com/m04kA/SMC-LabReservationService/internal/usecase/get_day_availability"
)

type Handler struct {
	useCase GetDayAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetDayAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/availability/day?date=2025-03-10
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.useCase.Execute(r.Context(), &getDayAvailabilityUC.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getDayAvailabilityUC.ErrInvalidInput):
			h.logger.Warn("GET /reservations/availability/day - Invalid date %q: %v", date, err)
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err, getDayAvailabilityUC.ErrInvalidInput))

		default:
			h.logger.Error("GET /reservations/availability/day - Failed to build grid: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
