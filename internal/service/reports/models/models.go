package models

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// RevenueRequest период отчета в формате YYYY-MM-DD, обе даты включительно
type RevenueRequest struct {
	From       string
	To         string
	LocationID *int64
}

// Response модели

// RevenueTotals итоги
type RevenueTotals struct {
	Bookings int64 `json:"bookings"`
	Revenue  int64 `json:"revenue"`
	Hours    int64 `json:"hours"`
}

// LocationRevenue выручка локации
type LocationRevenue struct {
	LocationID   int64  `json:"locationId"`
	LocationName string `json:"locationName"`
	Bookings     int64  `json:"bookings"`
	Revenue      int64  `json:"revenue"`
}

// DailyRevenue выручка за день
type DailyRevenue struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Bookings int64  `json:"bookings"`
	Revenue  int64  `json:"revenue"`
}

// RevenueReportResponse отчет по выручке
type RevenueReportResponse struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	LocationID *int64            `json:"locationId,omitempty"`
	Totals     RevenueTotals     `json:"totals"`
	ByLocation []LocationRevenue `json:"byLocation"`
	ByDay      []DailyRevenue    `json:"byDay"`
}

// AnalyticsResponse счетчики панели администратора
type AnalyticsResponse struct {
	Locations          int64            `json:"locations"`
	Slots              int64            `json:"slots"`
	ActiveSessions     int64            `json:"activeSessions"`
	UpcomingBookings   int64            `json:"upcomingBookings"`
	CompletedToday     int64            `json:"completedToday"`
	RevenueToday       int64            `json:"revenueToday"`
	OccupancyRate      float64          `json:"occupancyRate"`
	BookingsByLocation map[string]int64 `json:"bookingsByLocationType"`
}

// FromDomainRevenueReport конвертирует отчет в DTO
func FromDomainRevenueReport(r *domain.RevenueReport, locationID *int64) *RevenueReportResponse {
	resp := &RevenueReportResponse{
		From:       r.From.Format(domain.DateFormat),
		To:         r.To.Format(domain.DateFormat),
		LocationID: locationID,
		Totals: RevenueTotals{
			Bookings: r.Totals.Bookings,
			Revenue:  r.Totals.Revenue,
			Hours:    r.Totals.Hours,
		},
		ByLocation: make([]LocationRevenue, 0, len(r.ByLocation)),
		ByDay:      make([]DailyRevenue, 0, len(r.ByDay)),
	}

	for _, l := range r.ByLocation {
		resp.ByLocation = append(resp.ByLocation, LocationRevenue{
			LocationID:   l.LocationID,
			LocationName: l.LocationName,
			Bookings:     l.Bookings,
			Revenue:      l.Revenue,
		})
	}
	for _, d := range r.ByDay {
		resp.ByDay = append(resp.ByDay, DailyRevenue{
			Date:     d.Day.Format(domain.DateFormat),
			Bookings: d.Bookings,
			Revenue:  d.Revenue,
		})
	}

	return resp
}

// FromDomainAnalytics конвертирует счетчики в DTO
func FromDomainAnalytics(a *domain.Analytics) *AnalyticsResponse {
	byType := make(map[string]int64, len(domain.LocationTypes))
	for _, t := range domain.LocationTypes {
		byType[string(t)] = a.BookingsByLocation[t]
	}

	return &AnalyticsResponse{
		Locations:          a.Locations,
		Slots:              a.Slots,
		ActiveSessions:     a.ActiveSessions,
		UpcomingBookings:   a.UpcomingBookings,
		CompletedToday:     a.CompletedToday,
		RevenueToday:       a.RevenueToday,
		OccupancyRate:      a.OccupancyRate,
		BookingsByLocation: byType,
	}
}
