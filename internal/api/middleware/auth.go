package middleware

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "доступ запрещен"
)

// Auth проверяет токен сессии из cookie или заголовка Authorization: Bearer
// и кладет пользователя в контекст
func Auth(parser TokenParser, cookieName string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, cookieName)
			if token == "" {
				logger.Warn("%s %s - Missing session token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			userID, role, err := parser.Parse(token)
			if err != nil {
				logger.Warn("%s %s - Invalid session token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID, role)))
		})
	}
}

// RequireRole пропускает только пользователей с указанной ролью
// Должен стоять после Auth
func RequireRole(role domain.Role, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := GetUserRole(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			if current != role {
				userID, _ := GetUserID(r.Context())
				logger.Warn("%s %s - Forbidden: user_id=%d, role=%s", r.Method, r.URL.Path, userID, current)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
