package locations

import "errors"

var (
	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("locations.service: location not found")

	// ErrDuplicateName возвращается, когда название уже занято
	ErrDuplicateName = errors.New("locations.service: location name already exists")

	// ErrLocationInUse возвращается при удалении локации с бронированиями
	ErrLocationInUse = errors.New("locations.service: location has bookings")

	// ErrSlotsInUse возвращается, когда удаляемые места заняты upcoming/active бронированиями
	ErrSlotsInUse = errors.New("locations.service: slots to remove have upcoming or active bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("locations.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("locations.service: internal error")
)
