package checkout_booking

import "time"

// Request модель запроса завершения парковки
type Request struct {
	UserID    int64
	BookingID int64
}

// Response завершенное бронирование
type Response struct {
	ID                int64
	UserID            int64
	SlotID            int64
	LocationID        int64
	LocationName      string
	SpotCode          string
	EntryTime         time.Time
	EstimatedExitTime time.Time
	ActualExitTime    time.Time
	TotalPrice        int64 // Итог по фактическому времени
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
