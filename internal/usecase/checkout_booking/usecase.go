package checkout_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
)

// UseCase use case завершения парковки (выезд)
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	hourlyRate   int64
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	hourlyRate int64,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		hourlyRate:   hourlyRate,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute завершает активное бронирование владельца
// Строка бронирования блокируется, поэтому повторный выезд видит completed и отклоняется без повторного начисления
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckoutBooking: user=%d, booking=%d", req.UserID, req.BookingID)

	// 1. Валидация входных данных
	if req.UserID <= 0 || req.BookingID <= 0 {
		uc.logger.Warn("CheckoutBooking: invalid input user=%d, booking=%d", req.UserID, req.BookingID)
		return nil, ErrInvalidInput
	}

	var result *domain.Booking

	// 2. Проверка и обновление в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем бронирование
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckoutBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			if errors.Is(err, bookingRepo.ErrLockConflict) {
				uc.logger.Warn("CheckoutBooking: booking id=%d locked concurrently: %v", req.BookingID, err)
				return ErrConflict
			}
			uc.logger.Error("CheckoutBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Время выезда берется после получения блокировки
		now := uc.timeProvider.Now()

		// 2.2. Только владелец и только active
		if !booking.CanCheckout(req.UserID, now) {
			uc.logger.Warn("CheckoutBooking: booking id=%d cannot be checked out by user=%d, owner=%d, status=%s",
				booking.ID, req.UserID, booking.UserID, booking.EffectiveStatus(now))
			return ErrBookingNotFound
		}

		// 2.3. Пересчитываем цену по фактическому времени
		price := domain.CalculatePrice(booking.EntryTime, now, uc.hourlyRate)

		if err := uc.bookingRepo.Complete(txCtx, booking.ID, now, price); err != nil {
			if errors.Is(err, bookingRepo.ErrLockConflict) {
				return ErrConflict
			}
			uc.logger.Error("CheckoutBooking: failed to complete booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to complete booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCompleted
		booking.ActualExitTime = &now
		booking.TotalPrice = price
		booking.UpdatedAt = now
		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CheckoutBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.Checkout()
	uc.logger.Info("CheckoutBooking: booking id=%d completed, price=%d", result.ID, result.TotalPrice)

	return &Response{
		ID:                result.ID,
		UserID:            result.UserID,
		SlotID:            result.SlotID,
		LocationID:        result.LocationID,
		LocationName:      result.LocationName,
		SpotCode:          result.SpotCode,
		EntryTime:         result.EntryTime,
		EstimatedExitTime: result.EstimatedExitTime,
		ActualExitTime:    *result.ActualExitTime,
		TotalPrice:        result.TotalPrice,
		Status:            string(result.Status),
		CreatedAt:         result.CreatedAt,
		UpdatedAt:         result.UpdatedAt,
	}, nil
}
