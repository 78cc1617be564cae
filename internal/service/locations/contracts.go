package locations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	Create(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	List(ctx context.Context, filter domain.LocationsFilter) ([]*domain.Location, int64, error)
	Update(ctx context.Context, loc *domain.Location) error
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория мест
type SlotRepository interface {
	CreateBatch(ctx context.Context, locationID int64, codes []string) error
	ListAvailability(ctx context.Context, locationID int64, window domain.TimeWindow) ([]*domain.SlotAvailability, error)
	ListByCodes(ctx context.Context, locationID int64, codes []string) ([]*domain.Slot, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
	Reprefix(ctx context.Context, locationID int64, prefix string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountBlockingForSlots(ctx context.Context, slotIDs []int64) (int64, error)
	CountByLocation(ctx context.Context, locationID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
