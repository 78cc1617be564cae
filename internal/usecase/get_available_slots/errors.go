package get_available_slots

import "errors"

var (
	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("get_available_slots: location not found")

	// ErrInvalidWindow возвращается, когда конец интервала не позже начала
	ErrInvalidWindow = errors.New("get_available_slots: invalid time window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
