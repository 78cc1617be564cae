package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

// Service отчеты и аналитика для администратора
type Service struct {
	reportRepo   ReportRepository
	txManager    TransactionManager
	location     *time.Location
	maxRangeDays int
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса отчетов
// Границы дней считаются в часовом поясе tz
func NewService(reportRepo ReportRepository, txManager TransactionManager, tz *time.Location, maxRangeDays int, logger Logger) *Service {
	if tz == nil {
		tz = time.UTC
	}

	return &Service{
		reportRepo:   reportRepo,
		txManager:    txManager,
		location:     tz,
		maxRangeDays: maxRangeDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Revenue отчет по завершенным бронированиям с actual_exit_time в [from, to+1d)
func (s *Service) Revenue(ctx context.Context, req *models.RevenueRequest) (*models.RevenueReportResponse, error) {
	s.logger.Info("Revenue: from=%s, to=%s, location=%v", req.From, req.To, req.LocationID)

	from, to, err := s.parseRange(req.From, req.To)
	if err != nil {
		s.logger.Warn("Revenue: invalid range: %v", err)
		return nil, err
	}

	filter := domain.RevenueFilter{
		From:       from,
		To:         to.AddDate(0, 0, 1),
		LocationID: req.LocationID,
	}

	var (
		totals     domain.RevenueTotals
		byLocation []domain.LocationRevenue
		byDay      []domain.DailyRevenue
	)

	// Итоги и разбивки читаются из одного снимка, чтобы суммы сходились
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error

		totals, err = s.reportRepo.RevenueTotals(txCtx, filter)
		if err != nil {
			s.logger.Error("Revenue: failed to get totals: %v", err)
			return fmt.Errorf("%w: Revenue - totals: %v", ErrInternal, err)
		}

		byLocation, err = s.reportRepo.RevenueByLocation(txCtx, filter)
		if err != nil {
			s.logger.Error("Revenue: failed to get per-location revenue: %v", err)
			return fmt.Errorf("%w: Revenue - by location: %v", ErrInternal, err)
		}

		byDay, err = s.reportRepo.RevenueByDay(txCtx, filter, s.location.String())
		if err != nil {
			s.logger.Error("Revenue: failed to get daily revenue: %v", err)
			return fmt.Errorf("%w: Revenue - by day: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("Revenue: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: Revenue - transaction: %v", ErrInternal, err)
	}

	report := &domain.RevenueReport{
		From:       from,
		To:         to,
		Totals:     totals,
		ByLocation: byLocation,
		ByDay:      byDay,
	}

	s.logger.Info("Revenue: %d bookings, revenue=%d", totals.Bookings, totals.Revenue)
	return models.FromDomainRevenueReport(report, req.LocationID), nil
}

// Analytics счетчики панели администратора
// Ошибка отдельного счетчика логируется, счетчик остается нулевым
func (s *Service) Analytics(ctx context.Context) *models.AnalyticsResponse {
	now := s.timeProvider.Now()
	local := now.In(s.location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	a := &domain.Analytics{}
	var err error

	if a.Locations, err = s.reportRepo.CountLocations(ctx); err != nil {
		s.logger.Error("Analytics: failed to count locations: %v", err)
	}
	if a.Slots, err = s.reportRepo.CountSlots(ctx); err != nil {
		s.logger.Error("Analytics: failed to count slots: %v", err)
	}
	if a.ActiveSessions, err = s.reportRepo.CountActive(ctx, now); err != nil {
		s.logger.Error("Analytics: failed to count active sessions: %v", err)
	}
	if a.UpcomingBookings, err = s.reportRepo.CountUpcoming(ctx, now); err != nil {
		s.logger.Error("Analytics: failed to count upcoming bookings: %v", err)
	}
	if a.CompletedToday, a.RevenueToday, err = s.reportRepo.CompletedBetween(ctx, dayStart, dayEnd); err != nil {
		s.logger.Error("Analytics: failed to get today's revenue: %v", err)
		a.CompletedToday, a.RevenueToday = 0, 0
	}
	if a.BookingsByLocation, err = s.reportRepo.BookingsByLocationType(ctx); err != nil {
		s.logger.Error("Analytics: failed to count bookings by location type: %v", err)
	}

	a.OccupancyRate = domain.OccupancyRate(a.Slots, a.ActiveSessions)

	return models.FromDomainAnalytics(a)
}

// parseRange разбирает даты периода в часовом поясе отчетов
func (s *Service) parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation(domain.DateFormat, fromStr, s.location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidInput)
	}
	to, err := time.ParseInLocation(domain.DateFormat, toStr, s.location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidInput)
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from is after to", ErrInvalidInput)
	}
	if s.maxRangeDays > 0 && to.Sub(from) >= time.Duration(s.maxRangeDays)*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, s.maxRangeDays)
	}

	return from, to, nil
}
