package logout_user

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

type Logger interface {
	Info(format string, v ...interface{})
}

type Handler struct {
	cookie handlers.CookieConfig
	logger Logger
}

func NewHandler(cookie handlers.CookieConfig, logger Logger) *Handler {
	return &Handler{
		cookie: cookie,
		logger: logger,
	}
}

// Handle POST /api/v1/auth/logout
// Токены не отзываются, клиент просто теряет cookie
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.ClearSessionCookie(w, h.cookie)

	h.logger.Info("POST /auth/logout - Session cookie cleared")
	w.WriteHeader(http.StatusNoContent)
}
