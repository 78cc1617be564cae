package checkout_booking

import (
	"time"

	checkoutBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/checkout_booking"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	SlotID            int64     `json:"slotId"`
	LocationID        int64     `json:"locationId"`
	LocationName      string    `json:"locationName,omitempty"`
	SpotCode          string    `json:"spotCode"`
	EntryTime         time.Time `json:"entryTime"`
	EstimatedExitTime time.Time `json:"estimatedExitTime"`
	ActualExitTime    time.Time `json:"actualExitTime"`
	TotalPrice        int64     `json:"totalPrice"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkoutBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		UserID:            resp.UserID,
		SlotID:            resp.SlotID,
		LocationID:        resp.LocationID,
		LocationName:      resp.LocationName,
		SpotCode:          resp.SpotCode,
		EntryTime:         resp.EntryTime,
		EstimatedExitTime: resp.EstimatedExitTime,
		ActualExitTime:    resp.ActualExitTime,
		TotalPrice:        resp.TotalPrice,
		Status:            resp.Status,
		CreatedAt:         resp.CreatedAt,
		UpdatedAt:         resp.UpdatedAt,
	}
}
