package checkout_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	checkoutBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/checkout_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "активное бронирование не найдено"
	msgConflict         = "бронирование изменяется, повторите запрос"
)

type Handler struct {
	useCase CheckoutBookingUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
// Завершает парковку: фиксирует время выезда и итоговую стоимость
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkoutBooking.Request{UserID: userID, BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, checkoutBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Active booking not found: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkoutBooking.ErrConflict):
			h.logger.Warn("PUT /bookings/{id} - Concurrent update: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, checkoutBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to checkout: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Checkout completed: booking_id=%d, user_id=%d, total_price=%d",
		bookingID, userID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
