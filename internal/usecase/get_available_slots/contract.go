package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

// SlotRepository интерфейс репозитория мест
type SlotRepository interface {
	ListAvailability(ctx context.Context, locationID int64, window domain.TimeWindow) ([]*domain.SlotAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
