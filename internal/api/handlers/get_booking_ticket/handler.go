package get_booking_ticket

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
)

const (
	minSize = 128
	maxSize = 1024
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgInvalidSize       = "некорректный размер QR кода"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "бронирование не найдено"
	msgForbidden         = "доступ запрещен"
	msgTicketUnavailable = "билет недоступен для завершенного бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/ticket
// Query params: size (опционально, пиксели)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/ticket - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	size, err := handlers.QueryInt(r, "size", 0)
	if err != nil || (size != 0 && (size < minSize || size > maxSize)) {
		h.logger.Warn("GET /bookings/{id}/ticket - Invalid size: %q", r.URL.Query().Get("size"))
		handlers.RespondBadRequest(w, msgInvalidSize)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/ticket - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	png, err := h.service.GetTicket(r.Context(), bookingID, userID, size)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/ticket - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/ticket - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrTicketUnavailable):
			h.logger.Warn("GET /bookings/{id}/ticket - Ticket unavailable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgTicketUnavailable)

		default:
			h.logger.Error("GET /bookings/{id}/ticket - Failed to render ticket: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/ticket - Ticket rendered: booking_id=%d, bytes=%d", bookingID, len(png))
	handlers.RespondPNG(w, png)
}
