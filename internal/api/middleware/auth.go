package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/avoevodin/hall-booking-service/internal/api/handlers"
)

const adminTokenHeader = "X-Admin-Token"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminAuth проверяет админский токен в заголовке X-Admin-Token
// Сравнение постоянное по времени
func AdminAuth(token string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(adminTokenHeader)
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				logger.Warn("AdminAuth: unauthorized request to %s %s", r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, "требуется админский токен")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
