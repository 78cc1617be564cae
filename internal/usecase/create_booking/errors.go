package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidWindow возвращается, когда время выезда не позже въезда или интервал в прошлом
	ErrInvalidWindow = errors.New("create_booking: invalid time window")

	// ErrSlotNotFound возвращается, когда место не найдено
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotNotAvailable возвращается, когда место занято на запрошенном интервале
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
