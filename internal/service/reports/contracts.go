package reports

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ReportRepository интерфейс агрегирующего репозитория
type ReportRepository interface {
	RevenueTotals(ctx context.Context, filter domain.RevenueFilter) (domain.RevenueTotals, error)
	RevenueByLocation(ctx context.Context, filter domain.RevenueFilter) ([]domain.LocationRevenue, error)
	RevenueByDay(ctx context.Context, filter domain.RevenueFilter, timezone string) ([]domain.DailyRevenue, error)
	CountLocations(ctx context.Context) (int64, error)
	CountSlots(ctx context.Context) (int64, error)
	CountActive(ctx context.Context, now time.Time) (int64, error)
	CountUpcoming(ctx context.Context, now time.Time) (int64, error)
	CompletedBetween(ctx context.Context, from, to time.Time) (int64, int64, error)
	BookingsByLocationType(ctx context.Context) (map[domain.LocationType]int64, error)
}

// TransactionManager выполняет чтение отчета в одном снимке данных
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
