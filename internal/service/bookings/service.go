package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ticket"
)

// Service сервис для чтения бронирований и выдачи билетов
type Service struct {
	bookingRepo  BookingRepository
	signer       TicketSigner
	timeProvider TimeProvider
	hourlyRate   int64
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	signer TicketSigner,
	hourlyRate int64,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		signer:       signer,
		timeProvider: &RealTimeProvider{},
		hourlyRate:   hourlyRate,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои бронирования, администратор любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, role domain.Role) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getOwned(ctx, "GetByID", id, userID, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// GetUserBookings получает историю бронирований пользователя постранично
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v, page=%d", req.UserID, req.Status, req.Page)

	filter := domain.BookingsFilter{
		UserID: &req.UserID,
		Page:   domain.NewPage(req.Page, req.Limit),
	}

	// Конвертируем статус из строки в domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	now := s.timeProvider.Now()
	bookings, total, err := s.bookingRepo.List(ctx, filter, now)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d/%d bookings for user=%d", len(bookings), total, req.UserID)
	return models.FromDomainBookingList(bookings, filter.Page, total, now), nil
}

// GetActiveSessions список текущих парковок с прошедшим временем и текущей стоимостью
func (s *Service) GetActiveSessions(ctx context.Context, req *models.GetActiveSessionsRequest) (*models.ActiveSessionListResponse, error) {
	s.logger.Info("GetActiveSessions: location=%v, page=%d", req.LocationID, req.Page)

	page := domain.NewPage(req.Page, req.Limit)
	now := s.timeProvider.Now()

	sessions, total, err := s.bookingRepo.ListActiveSessions(ctx, req.LocationID, now, page)
	if err != nil {
		s.logger.Error("GetActiveSessions: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetActiveSessions - repository error: %v", ErrInternal, err)
	}

	resp := &models.ActiveSessionListResponse{
		Items: make([]models.ActiveSessionResponse, 0, len(sessions)),
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	}

	for _, session := range sessions {
		b := session.Booking
		elapsed := int64(now.Sub(b.EntryTime).Minutes())
		if elapsed < 0 {
			elapsed = 0
		}

		resp.Items = append(resp.Items, models.ActiveSessionResponse{
			Booking:        *models.FromDomainBooking(b, now),
			UserName:       session.UserName,
			UserEmail:      session.UserEmail,
			ElapsedMinutes: elapsed,
			RunningPrice:   domain.CalculatePrice(b.EntryTime, now, s.hourlyRate),
		})
	}

	s.logger.Info("GetActiveSessions: fetched %d/%d sessions", len(sessions), total)
	return resp, nil
}

// GetTicket возвращает PNG с QR кодом въездного билета
// Доступно только владельцу и только пока бронирование занимает место
func (s *Service) GetTicket(ctx context.Context, id int64, userID int64, size int) ([]byte, error) {
	s.logger.Info("GetTicket: booking id=%d, user=%d", id, userID)

	booking, err := s.getOwned(ctx, "GetTicket", id, userID, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	if !booking.HasTicket() {
		s.logger.Warn("GetTicket: booking id=%d has status=%s", id, booking.Status)
		return nil, ErrTicketUnavailable
	}

	png, err := s.signer.QRCode(ticket.Ticket{
		BookingID: booking.ID,
		SlotID:    booking.SlotID,
		SpotCode:  booking.SpotCode,
		EntryTime: booking.EntryTime,
	}, size)
	if err != nil {
		s.logger.Error("GetTicket: failed to render QR for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetTicket - render QR: %v", ErrInternal, err)
	}

	return png, nil
}

// getOwned получает бронирование и проверяет права доступа
func (s *Service) getOwned(ctx context.Context, op string, id int64, userID int64, role domain.Role) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.UserID != userID && role != domain.RoleAdmin {
		s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}
