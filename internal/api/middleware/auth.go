package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LabReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservationService/internal/domain"
)

const (
	msgMissingToken = "отсутствует bearer-токен"
	msgInvalidToken = "недействительный или просроченный токен"
)

// Auth проверяет заголовок Authorization: Bearer <jwt>
// и кладёт domain.Caller в контекст запроса
func Auth(validator TokenValidator, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			role, err := domain.ParseRole(claims.Role)
			if err != nil || claims.UserID <= 0 {
				logger.Warn("%s %s - Invalid token claims: user_id=%d, role=%q", r.Method, r.URL.Path, claims.UserID, claims.Role)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := WithCaller(r.Context(), domain.Caller{UserID: claims.UserID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
