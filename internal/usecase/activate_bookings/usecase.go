package activate_bookings

import (
	"context"
	"errors"
	"fmt"
)

// ErrInternal возвращается при ошибке обновления статусов
var ErrInternal = errors.New("activate_bookings: internal error")

// UseCase переводит наступившие upcoming бронирования в active
// Чтения не зависят от запуска: статус и так вычисляется через EffectiveStatus
type UseCase struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute возвращает количество активированных бронирований
func (uc *UseCase) Execute(ctx context.Context) (int64, error) {
	now := uc.timeProvider.Now()

	n, err := uc.bookingRepo.ActivateDue(ctx, now)
	if err != nil {
		uc.logger.Error("ActivateBookings: failed to activate due bookings: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if n > 0 {
		uc.metrics.Activated(n)
		uc.logger.Info("ActivateBookings: %d bookings switched to active", n)
	}

	return n, nil
}
