package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Valid проверяет, что статус входит в допустимый набор
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking бронирование парковочного места
type Booking struct {
	ID                int64
	UserID            int64
	SlotID            int64
	LocationID        int64
	EntryTime         time.Time
	EstimatedExitTime time.Time
	ActualExitTime    *time.Time // NULL до выезда
	TotalPrice        int64
	Status            BookingStatus

	// Денормализованные данные для ответов, заполняются JOIN-ом
	SpotCode     string
	LocationName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window интервал [entry_time, estimated_exit_time)
func (b *Booking) Window() TimeWindow {
	return TimeWindow{Start: b.EntryTime, End: b.EstimatedExitTime}
}

// EffectiveStatus статус с учетом текущего времени
// upcoming с наступившим entry_time считается active, даже если планировщик еще не обновил строку
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.Status == StatusUpcoming && !b.EntryTime.After(now) {
		return StatusActive
	}
	return b.Status
}

// BlocksSlot true, если бронирование занимает слот на своем интервале
func (b *Booking) BlocksSlot() bool {
	return b.Status == StatusUpcoming || b.Status == StatusActive
}

// CanCheckout проверяет, что пользователь может завершить парковку
func (b *Booking) CanCheckout(userID int64, now time.Time) bool {
	return b.UserID == userID && b.EffectiveStatus(now) == StatusActive
}

// HasTicket true, если для бронирования можно выдать въездной билет
func (b *Booking) HasTicket() bool {
	return b.BlocksSlot()
}

// InitialStatus статус нового бронирования в зависимости от времени въезда
func InitialStatus(entry, now time.Time) BookingStatus {
	if entry.After(now) {
		return StatusUpcoming
	}
	return StatusActive
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	UserID     *int64         // Бронирования пользователя (опционально)
	LocationID *int64         // Фильтр по локации (опционально)
	Status     *BookingStatus // Фильтр по статусу (опционально)
	Page       Page
}

// BlockingStatuses статусы, при которых слот считается занятым на интервале бронирования
var BlockingStatuses = []BookingStatus{
	StatusUpcoming,
	StatusActive,
}
