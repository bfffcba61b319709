package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-LabReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-LabReservationService/pkg/metrics"
)

// Handlers обработчики маршрутов /api/v1
type Handlers struct {
	Login                   http.HandlerFunc
	ListReservations        http.HandlerFunc
	CheckAvailability       http.HandlerFunc
	GetDayAvailability      http.HandlerFunc
	GetReservation          http.HandlerFunc
	CreateReservation       http.HandlerFunc
	UpdateReservationStatus http.HandlerFunc
	CancelReservation       http.HandlerFunc
	ListOwnReservations     http.HandlerFunc
	ListLaboratories        http.HandlerFunc
	GetGeneralStats         http.HandlerFunc
	Health                  http.HandlerFunc
}

// Options сквозные зависимости роутера
type Options struct {
	Tokens middleware.TokenValidator
	Logger middleware.Logger

	// Metrics nil: HTTP метрики и /metrics не регистрируются
	Metrics     *metrics.Metrics
	MetricsPath string
	Gatherer    http.Handler
}

// NewRouter собирает маршруты сервиса
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID(opts.Logger))
	r.Use(middleware.Recover(opts.Logger))

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))

		exposition := opts.Gatherer
		if exposition == nil {
			exposition = promhttp.Handler()
		}
		r.Handle(opts.MetricsPath, exposition).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	api.HandleFunc("/reservations", h.ListReservations).Methods(http.MethodGet)
	api.HandleFunc("/reservations/availability", h.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/reservations/availability/day", h.GetDayAvailability).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id:[0-9]+}", h.GetReservation).Methods(http.MethodGet)

	api.HandleFunc("/laboratories", h.ListLaboratories).Methods(http.MethodGet)
	api.HandleFunc("/stats/general", h.GetGeneralStats).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(opts.Tokens, opts.Logger))

	protected.HandleFunc("/reservations", h.CreateReservation).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{id:[0-9]+}", h.UpdateReservationStatus).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{id:[0-9]+}", h.CancelReservation).Methods(http.MethodDelete)
	protected.HandleFunc("/me/reservations", h.ListOwnReservations).Methods(http.MethodGet)

	return r
}
