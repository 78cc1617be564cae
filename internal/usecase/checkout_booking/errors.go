package checkout_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("checkout_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено, принадлежит другому
	// пользователю или не в статусе active. Причины не различаются, чтобы не раскрывать чужие бронирования
	ErrBookingNotFound = errors.New("checkout_booking: active booking not found")

	// ErrConflict возвращается, когда бронирование параллельно изменяется другой транзакцией
	ErrConflict = errors.New("checkout_booking: concurrent update")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("checkout_booking: internal error")
)
