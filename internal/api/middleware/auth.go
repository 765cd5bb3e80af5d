package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/salonhub/SalonBookingService/internal/api/handlers"
)

const msgMissingUserID = "отсутствует заголовок X-User-ID"

// UserIDHeader заголовок с идентификатором пользователя.
// Аутентификацию выполняет API gateway; сервис доверяет заголовку.
const UserIDHeader = "X-User-ID"

type contextKey string

const userIDContextKey contextKey = "userID"

// Auth проверяет наличие X-User-ID и кладет его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(UserIDHeader)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	return userID, ok
}
