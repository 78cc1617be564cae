package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64
	Status *string
	Page   int
	Limit  int
}

// GetActiveSessionsRequest запрос списка текущих парковок для администратора
type GetActiveSessionsRequest struct {
	LocationID *int64
	Page       int
	Limit      int
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"userId"`
	SlotID            int64      `json:"slotId"`
	LocationID        int64      `json:"locationId"`
	LocationName      string     `json:"locationName,omitempty"`
	SpotCode          string     `json:"spotCode"`
	EntryTime         time.Time  `json:"entryTime"`
	EstimatedExitTime time.Time  `json:"estimatedExitTime"`
	ActualExitTime    *time.Time `json:"actualExitTime,omitempty"`
	TotalPrice        int64      `json:"totalPrice"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// BookingListResponse страница бронирований
type BookingListResponse struct {
	Items []BookingResponse `json:"items"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
}

// ActiveSessionResponse текущая парковка
type ActiveSessionResponse struct {
	Booking        BookingResponse `json:"booking"`
	UserName       string          `json:"userName"`
	UserEmail      string          `json:"userEmail"`
	ElapsedMinutes int64           `json:"elapsedMinutes"`
	RunningPrice   int64           `json:"runningPrice"`
}

// ActiveSessionListResponse страница текущих парковок
type ActiveSessionListResponse struct {
	Items []ActiveSessionResponse `json:"items"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
	Total int64                   `json:"total"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO, статус вычисляется на момент now
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                b.ID,
		UserID:            b.UserID,
		SlotID:            b.SlotID,
		LocationID:        b.LocationID,
		LocationName:      b.LocationName,
		SpotCode:          b.SpotCode,
		EntryTime:         b.EntryTime,
		EstimatedExitTime: b.EstimatedExitTime,
		ActualExitTime:    b.ActualExitTime,
		TotalPrice:        b.TotalPrice,
		Status:            string(b.EffectiveStatus(now)),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует страницу domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, page domain.Page, total int64, now time.Time) *BookingListResponse {
	resp := &BookingListResponse{
		Items: make([]BookingResponse, 0, len(bookings)),
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Items = append(resp.Items, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
