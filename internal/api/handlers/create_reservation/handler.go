package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LabReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservationService/internal/api/middleware"
	createReservationUC "github.com/m04kA/SMC-LabReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgLaboratoryNotFound = "лаборатория не найдена"
	msgSlotNotAvailable   = "выбранный слот уже занят"
	msgCreated            = "бронирование создано"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing caller")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(caller.UserID))
	if err != nil {
		switch {
		case errors.Is(err, createReservationUC.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err, createReservationUC.ErrInvalidInput))

		case errors.Is(err, createReservationUC.ErrLaboratoryNotFound):
			h.logger.Warn("POST /reservations - Laboratory not found: %v", err)
			handlers.RespondBadRequest(w, msgLaboratoryNotFound)

		case errors.Is(err, createReservationUC.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: %v", err)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, owner=%d", result.ID, caller.UserID)
	handlers.RespondSuccess(w, http.StatusCreated, result, msgCreated)
}
