package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_slots"
)

// AvailabilityRequest HTTP request model
type AvailabilityRequest struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	LocationID     int64           `json:"locationId"`
	LocationName   string          `json:"locationName"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        time.Time       `json:"endTime"`
	TotalSlots     int             `json:"totalSlots"`
	AvailableSlots int             `json:"availableSlots"`
	Slots          []AvailableSlot `json:"slots"`
}

// AvailableSlot место и его статус на интервале
type AvailableSlot struct {
	ID       int64  `json:"id"`
	SpotCode string `json:"spot_code"`
	Status   string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AvailabilityRequest) ToUseCaseRequest(locationID int64) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		LocationID: locationID,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			ID:       slot.ID,
			SpotCode: slot.SpotCode,
			Status:   slot.Status,
		}
	}

	return &AvailableSlotsResponse{
		LocationID:     resp.LocationID,
		LocationName:   resp.LocationName,
		StartTime:      resp.StartTime,
		EndTime:        resp.EndTime,
		TotalSlots:     resp.TotalSlots,
		AvailableSlots: resp.AvailableSlots,
		Slots:          slots,
	}
}
