package middleware

import (
	"net/http"
	"strconv"

	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
)

// UserIDHeader заголовок с ID автора запроса
const UserIDHeader = "X-User-ID"

const msgUnauthorized = "требуется заголовок X-User-ID с положительным ID пользователя"

// Auth требует X-User-ID и кладет ID пользователя в контекст
// Подлинность ID не проверяется, это делает шлюз перед сервисом
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - Missing or invalid %s: %q", r.Method, r.URL.Path, UserIDHeader, raw)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
