package domain

// SlotStatus статус места на запрошенном интервале
// Не хранится в БД, вычисляется по пересекающимся бронированиям
type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotBooked    SlotStatus = "BOOKED"
)

// Slot физическое парковочное место
type Slot struct {
	ID         int64
	LocationID int64
	SpotCode   string
}

// SlotAvailability место и его статус на интервале
type SlotAvailability struct {
	Slot
	Status SlotStatus
}

// IsAvailable true, если место свободно
func (s *SlotAvailability) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// CountAvailable количество свободных мест
func CountAvailable(slots []*SlotAvailability) int {
	n := 0
	for _, s := range slots {
		if s.IsAvailable() {
			n++
		}
	}
	return n
}

// OccupancyRate процент занятых мест (0-100)
func OccupancyRate(total, occupied int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(occupied) / float64(total) * 100
}
