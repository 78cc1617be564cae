package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
)

// UseCase use case резервирования места
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	hourlyRate   int64
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	hourlyRate int64,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		hourlyRate:   hourlyRate,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Строка места блокируется (SELECT ... FOR UPDATE) до проверки пересечений,
// поэтому конкурирующие запросы на одно место выполняются по очереди
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, slot=%d, entry=%s, exit=%s",
		req.UserID, req.SlotID, req.EntryTime.Format("2006-01-02T15:04"), req.EstimatedExitTime.Format("2006-01-02T15:04"))

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	window := domain.TimeWindow{Start: req.EntryTime, End: req.EstimatedExitTime}

	var result *domain.Booking

	// 3. Проверка и вставка в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем строку места
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			if errors.Is(err, slotRepo.ErrLockConflict) {
				uc.logger.Warn("CreateBooking: slot id=%d locked concurrently: %v", req.SlotID, err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to lock slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
		}

		// 3.2. Считаем пересекающиеся upcoming/active бронирования
		overlapping, err := uc.bookingRepo.CountOverlapping(txCtx, slot.ID, window)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}

		if overlapping > 0 {
			uc.logger.Warn("CreateBooking: slot id=%d already booked, overlapping=%d", slot.ID, overlapping)
			return ErrSlotNotAvailable
		}

		// 3.3. Создаем бронирование с оценкой стоимости
		booking := &domain.Booking{
			UserID:            req.UserID,
			SlotID:            slot.ID,
			LocationID:        slot.LocationID,
			SpotCode:          slot.SpotCode,
			EntryTime:         req.EntryTime,
			EstimatedExitTime: req.EstimatedExitTime,
			TotalPrice:        domain.CalculatePrice(req.EntryTime, req.EstimatedExitTime, uc.hourlyRate),
			Status:            domain.InitialStatus(req.EntryTime, now),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrLockConflict) {
				uc.logger.Warn("CreateBooking: concurrent conflict on insert: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.ReservationConflict()
		}
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		// Ошибки begin/commit от менеджера транзакций
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.BookingCreated(string(result.Status))
	uc.logger.Info("CreateBooking: successfully created booking id=%d, slot=%d, status=%s, price=%d",
		result.ID, result.SlotID, result.Status, result.TotalPrice)

	return &Response{
		ID:                result.ID,
		UserID:            result.UserID,
		SlotID:            result.SlotID,
		LocationID:        result.LocationID,
		SpotCode:          result.SpotCode,
		EntryTime:         result.EntryTime,
		EstimatedExitTime: result.EstimatedExitTime,
		TotalPrice:        result.TotalPrice,
		Status:            string(result.Status),
		CreatedAt:         result.CreatedAt,
		UpdatedAt:         result.UpdatedAt,
	}, nil
}
