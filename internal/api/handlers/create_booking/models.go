package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID            int64     `json:"slotId" validate:"required,gt=0"`
	EntryTime         time.Time `json:"entryTime" validate:"required"`         // RFC 3339
	EstimatedExitTime time.Time `json:"estimatedExitTime" validate:"required"` // RFC 3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	SlotID            int64     `json:"slotId"`
	LocationID        int64     `json:"locationId"`
	SpotCode          string    `json:"spotCode"`
	EntryTime         time.Time `json:"entryTime"`
	EstimatedExitTime time.Time `json:"estimatedExitTime"`
	TotalPrice        int64     `json:"totalPrice"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:            userID,
		SlotID:            r.SlotID,
		EntryTime:         r.EntryTime,
		EstimatedExitTime: r.EstimatedExitTime,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		UserID:            resp.UserID,
		SlotID:            resp.SlotID,
		LocationID:        resp.LocationID,
		SpotCode:          resp.SpotCode,
		EntryTime:         resp.EntryTime,
		EstimatedExitTime: resp.EstimatedExitTime,
		TotalPrice:        resp.TotalPrice,
		Status:            resp.Status,
		CreatedAt:         resp.CreatedAt,
		UpdatedAt:         resp.UpdatedAt,
	}
}
