package get_available_slots

import "time"

// Request модель запроса доступности мест
type Request struct {
	LocationID int64
	StartTime  time.Time
	EndTime    time.Time
}

// Slot место и его статус на интервале
type Slot struct {
	ID       int64
	SpotCode string
	Status   string // AVAILABLE | BOOKED
}

// Response модель ответа
type Response struct {
	LocationID     int64
	LocationName   string
	StartTime      time.Time
	EndTime        time.Time
	TotalSlots     int
	AvailableSlots int
	Slots          []Slot
}
