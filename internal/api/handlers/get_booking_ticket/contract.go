package get_booking_ticket

import "context"

type BookingService interface {
	GetTicket(ctx context.Context, id int64, userID int64, size int) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
