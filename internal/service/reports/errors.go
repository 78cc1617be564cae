package reports

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном периоде отчета
	ErrInvalidInput = errors.New("reports.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reports.service: internal error")
)
