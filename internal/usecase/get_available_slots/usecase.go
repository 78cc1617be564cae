package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	locationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/location"
)

// UseCase use case получения доступности мест локации
type UseCase struct {
	locationRepo LocationRepository
	slotRepo     SlotRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(locationRepo LocationRepository, slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		locationRepo: locationRepo,
		slotRepo:     slotRepo,
		logger:       logger,
	}
}

// Execute возвращает все места локации со статусом AVAILABLE или BOOKED на интервале [StartTime, EndTime)
// Статус вычисляется по бронированиям при каждом запросе и ничего не блокирует
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: location=%d, start=%s, end=%s",
		req.LocationID, req.StartTime.Format("2006-01-02T15:04"), req.EndTime.Format("2006-01-02T15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем локацию
	location, err := uc.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("GetAvailableSlots: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 3. Вычисляем статусы мест
	window := domain.TimeWindow{Start: req.StartTime, End: req.EndTime}
	slots, err := uc.slotRepo.ListAvailability(ctx, location.ID, window)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots for location id=%d: %v", location.ID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	resp := &Response{
		LocationID:     location.ID,
		LocationName:   location.Name,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		TotalSlots:     len(slots),
		AvailableSlots: domain.CountAvailable(slots),
		Slots:          make([]Slot, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, Slot{
			ID:       s.ID,
			SpotCode: s.SpotCode,
			Status:   string(s.Status),
		})
	}

	uc.logger.Info("GetAvailableSlots: location=%d, available %d/%d", location.ID, resp.AvailableSlots, resp.TotalSlots)
	return resp, nil
}
