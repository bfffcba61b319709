package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// HeaderRequestID заголовок с ID запроса
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID проставляет X-Request-ID (берёт входящий или генерирует uuid)
// и логирует каждый запрос: метод, маршрут, статус, длительность
func RequestID(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(HeaderRequestID)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, id)

			rec := newStatusRecorder(w)
			ctx := context.WithValue(r.Context(), requestIDKey, id)
			next.ServeHTTP(rec, r.WithContext(ctx))

			logger.Info("%s %s - status=%d, duration=%s, request_id=%s",
				r.Method, routeTemplate(r), rec.status, time.Since(start), id)
		})
	}
}

// routeTemplate шаблон маршрута mux, чтобы не плодить метки и строки логов по ID
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}
