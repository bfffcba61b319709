package list_own_reservations

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-LabReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservationService/internal/api/middleware"
)

const (
	msgUnauthorized     = "требуется авторизация"
	msgInvalidParameter = "некорректный параметр includeCancelled"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me/reservations
// Query params: includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("GET /me/reservations - Missing caller")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	includeCancelled := false
	if raw := r.URL.Query().Get("includeCancelled"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /me/reservations - Invalid includeCancelled: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidParameter)
			return
		}
		includeCancelled = v
	}

	result, err := h.service.ListOwn(r.Context(), caller, includeCancelled)
	if err != nil {
		h.logger.Error("GET /me/reservations - Failed to list reservations: user=%d, error=%v", caller.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /me/reservations - Reservations retrieved: user=%d, count=%d", caller.UserID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
