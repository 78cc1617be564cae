package domain

import "time"

// RevenueFilter параметры отчета по выручке
// Учитываются завершенные бронирования с actual_exit_time в [From, To)
type RevenueFilter struct {
	From       time.Time
	To         time.Time
	LocationID *int64
}

// RevenueTotals итоги за период
type RevenueTotals struct {
	Bookings int64
	Revenue  int64
	Hours    int64
}

// LocationRevenue выручка одной локации
type LocationRevenue struct {
	LocationID   int64
	LocationName string
	Bookings     int64
	Revenue      int64
}

// DailyRevenue выручка за день
type DailyRevenue struct {
	Day      time.Time
	Bookings int64
	Revenue  int64
}

// RevenueReport отчет по выручке
type RevenueReport struct {
	From       time.Time
	To         time.Time
	Totals     RevenueTotals
	ByLocation []LocationRevenue
	ByDay      []DailyRevenue
}

// Analytics счетчики панели администратора
type Analytics struct {
	Locations          int64
	Slots              int64
	ActiveSessions     int64
	UpcomingBookings   int64
	CompletedToday     int64
	RevenueToday       int64
	OccupancyRate      float64
	BookingsByLocation map[LocationType]int64
}

// ActiveSession текущая парковка для мониторинга
type ActiveSession struct {
	Booking      *Booking
	UserName     string
	UserEmail    string
	ElapsedMin   int64
	RunningPrice int64
}
