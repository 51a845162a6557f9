package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/avdeevlv/GMS-ReservationService/internal/api/handlers"
	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"

	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

// Auth извлекает идентификацию пользователя из заголовков шлюза.
// Аутентификация выполняется выше по цепочке; сервис доверяет заголовкам
// X-User-ID и X-User-Role.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawUserID := r.Header.Get(headerUserID)
		if rawUserID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(rawUserID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		role := r.Header.Get(headerUserRole)
		if role == "" {
			role = domain.RoleCustomer
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles пропускает запрос только для перечисленных ролей.
// Применяется после Auth.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRole(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, "отсутствует роль пользователя")
				return
			}

			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			handlers.RespondForbidden(w, "недостаточно прав для выполнения операции")
		})
	}
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRole возвращает роль пользователя из контекста запроса
func GetUserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleKey).(string)
	return role, ok
}
