package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	locationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/location"
	"github.com/m04kA/SMC-ParkingService/internal/service/locations/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// Интервал, на который считается availableNow
const availableNowWindow = time.Hour

// Service сервис парковочных локаций
type Service struct {
	locationRepo LocationRepository
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса локаций
func NewService(
	locationRepo LocationRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		locationRepo: locationRepo,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// List поиск локаций по подстроке названия/адреса и типу
func (s *Service) List(ctx context.Context, req *models.ListLocationsRequest) (*models.LocationListResponse, error) {
	s.logger.Info("List: q=%q, type=%v, page=%d", req.Query, req.Type, req.Page)

	filter := domain.LocationsFilter{
		Query: req.Query,
		Page:  domain.NewPage(req.Page, req.Limit),
	}
	if req.Type != nil && *req.Type != "" {
		t, ok := domain.ParseLocationType(*req.Type)
		if !ok {
			s.logger.Warn("List: invalid type=%s", *req.Type)
			return nil, fmt.Errorf("%w: unknown location type %q", ErrInvalidInput, *req.Type)
		}
		filter.Type = &t
	}

	items, total, err := s.locationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.LocationListResponse{
		Items: make([]models.LocationResponse, 0, len(items)),
		Page:  filter.Page.Page,
		Limit: filter.Page.Limit,
		Total: total,
	}
	for _, l := range items {
		resp.Items = append(resp.Items, *models.FromDomainLocation(l))
	}

	return resp, nil
}

// Get получает локацию и количество мест, свободных на ближайший час
func (s *Service) Get(ctx context.Context, id int64) (*models.LocationResponse, error) {
	s.logger.Info("Get: location id=%d", id)

	loc, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Get", id, err)
	}

	resp := models.FromDomainLocation(loc)

	now := s.timeProvider.Now()
	slots, err := s.slotRepo.ListAvailability(ctx, loc.ID, domain.TimeWindow{Start: now, End: now.Add(availableNowWindow)})
	if err != nil {
		// Счетчик вспомогательный, локацию отдаем без него
		s.logger.Warn("Get: failed to count available slots for location id=%d: %v", id, err)
		return resp, nil
	}
	resp.AvailableNow = ptr.Ptr(domain.CountAvailable(slots))

	return resp, nil
}

// Create создает локацию и все ее места в одной транзакции
func (s *Service) Create(ctx context.Context, req *models.CreateLocationRequest) (*models.LocationResponse, error) {
	s.logger.Info("Create: name=%q, type=%s, slots=%d", req.Name, req.Type, req.TotalSlots)

	loc, err := buildLocation(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := s.locationRepo.Create(txCtx, loc)
		if err != nil {
			return err
		}

		return s.slotRepo.CreateBatch(txCtx, created.ID, domain.SpotCodes(created.Type, 1, created.TotalSlots))
	})
	if err != nil {
		if errors.Is(err, locationRepo.ErrDuplicateName) {
			s.logger.Warn("Create: duplicate name=%q", loc.Name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("Create: failed to create location: %v", err)
		return nil, fmt.Errorf("%w: Create - %v", ErrInternal, err)
	}

	s.logger.Info("Create: location id=%d created with %d slots", loc.ID, loc.TotalSlots)
	return models.FromDomainLocation(loc), nil
}

// Update обновляет локацию
// Рост добавляет места со следующими номерами, уменьшение удаляет места с наибольшими номерами,
// если на них нет upcoming/active бронирований
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateLocationRequest) (*models.LocationResponse, error) {
	s.logger.Info("Update: location id=%d", id)

	var result *domain.Location

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем локацию
		loc, err := s.locationRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		oldTotal := loc.TotalSlots
		oldType := loc.Type

		// 2. Применяем изменения
		if err := applyUpdate(loc, req); err != nil {
			return err
		}

		// 3. Смена типа меняет букву кодов мест
		if loc.Type != oldType {
			if err := s.slotRepo.Reprefix(txCtx, loc.ID, loc.Type.SpotPrefix()); err != nil {
				return err
			}
		}

		// 4. Добавляем или удаляем места
		switch {
		case loc.TotalSlots > oldTotal:
			if err := s.slotRepo.CreateBatch(txCtx, loc.ID, domain.SpotCodes(loc.Type, oldTotal+1, loc.TotalSlots)); err != nil {
				return err
			}
		case loc.TotalSlots < oldTotal:
			if err := s.removeSlots(txCtx, loc, oldTotal); err != nil {
				return err
			}
		}

		// 5. Сохраняем локацию
		if err := s.locationRepo.Update(txCtx, loc); err != nil {
			return err
		}

		result = loc
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrSlotsInUse):
			s.logger.Warn("Update: location id=%d rejected: %v", id, err)
			return nil, err
		default:
			return nil, s.mapRepoError("Update", id, err)
		}
	}

	s.logger.Info("Update: location id=%d updated, slots=%d", id, result.TotalSlots)
	return models.FromDomainLocation(result), nil
}

// Delete удаляет локацию, если на нее нет ни одного бронирования
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: location id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.locationRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		count, err := s.bookingRepo.CountByLocation(txCtx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrLocationInUse
		}

		return s.locationRepo.Delete(txCtx, id)
	})

	if err != nil {
		if errors.Is(err, ErrLocationInUse) {
			s.logger.Warn("Delete: location id=%d has bookings", id)
			return ErrLocationInUse
		}
		return s.mapRepoError("Delete", id, err)
	}

	s.logger.Info("Delete: location id=%d deleted", id)
	return nil
}

// removeSlots удаляет места с номерами (TotalSlots, oldTotal]
func (s *Service) removeSlots(ctx context.Context, loc *domain.Location, oldTotal int) error {
	codes := domain.SpotCodes(loc.Type, loc.TotalSlots+1, oldTotal)

	slots, err := s.slotRepo.ListByCodes(ctx, loc.ID, codes)
	if err != nil {
		return err
	}

	ids := make([]int64, 0, len(slots))
	for _, sl := range slots {
		ids = append(ids, sl.ID)
	}

	blocking, err := s.bookingRepo.CountBlockingForSlots(ctx, ids)
	if err != nil {
		return err
	}
	if blocking > 0 {
		return fmt.Errorf("%w: %d bookings", ErrSlotsInUse, blocking)
	}

	return s.slotRepo.DeleteByIDs(ctx, ids)
}

// mapRepoError переводит ошибки репозитория в ошибки сервиса
func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, locationRepo.ErrLocationNotFound):
		s.logger.Warn("%s: location id=%d not found", op, id)
		return ErrLocationNotFound
	case errors.Is(err, locationRepo.ErrDuplicateName):
		s.logger.Warn("%s: duplicate name for location id=%d", op, id)
		return ErrDuplicateName
	case errors.Is(err, locationRepo.ErrLocationInUse):
		s.logger.Warn("%s: location id=%d is referenced by bookings", op, id)
		return ErrLocationInUse
	default:
		s.logger.Error("%s: repository error for location id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
	}
}

func buildLocation(req *models.CreateLocationRequest) (*domain.Location, error) {
	t, ok := domain.ParseLocationType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: unknown location type %q", ErrInvalidInput, req.Type)
	}

	loc := &domain.Location{
		Name:       strings.TrimSpace(req.Name),
		Address:    strings.TrimSpace(req.Address),
		Type:       t,
		TotalSlots: req.TotalSlots,
	}
	if err := validateLocation(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func applyUpdate(loc *domain.Location, req *models.UpdateLocationRequest) error {
	if req.Name != nil {
		loc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		loc.Address = strings.TrimSpace(*req.Address)
	}
	if req.Type != nil {
		t, ok := domain.ParseLocationType(*req.Type)
		if !ok {
			return fmt.Errorf("%w: unknown location type %q", ErrInvalidInput, *req.Type)
		}
		loc.Type = t
	}
	if req.TotalSlots != nil {
		loc.TotalSlots = *req.TotalSlots
	}
	return validateLocation(loc)
}

func validateLocation(loc *domain.Location) error {
	if loc.Name == "" || len(loc.Name) > domain.MaxLocationNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxLocationNameLength)
	}
	if loc.Address == "" || len(loc.Address) > domain.MaxLocationAddressLength {
		return fmt.Errorf("%w: address must be 1-%d characters", ErrInvalidInput, domain.MaxLocationAddressLength)
	}
	if loc.TotalSlots < domain.MinLocationSlots || loc.TotalSlots > domain.MaxLocationSlots {
		return fmt.Errorf("%w: totalSlots must be %d-%d", ErrInvalidInput, domain.MinLocationSlots, domain.MaxLocationSlots)
	}
	return nil
}
