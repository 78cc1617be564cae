package location

import "errors"

var (
	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("location.repository: location not found")

	// ErrDuplicateName возвращается, когда локация с таким названием уже есть
	ErrDuplicateName = errors.New("location.repository: location name already exists")

	// ErrLocationInUse возвращается при удалении локации, на которую ссылаются бронирования
	ErrLocationInUse = errors.New("location.repository: location is referenced by bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("location.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("location.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("location.repository: failed to scan row")
)
