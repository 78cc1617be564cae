package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID            int64     // ID пользователя из сессии
	SlotID            int64     // ID места
	EntryTime         time.Time // Время въезда
	EstimatedExitTime time.Time // Планируемое время выезда
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                int64
	UserID            int64
	SlotID            int64
	LocationID        int64
	SpotCode          string
	EntryTime         time.Time
	EstimatedExitTime time.Time
	TotalPrice        int64 // Оценка по планируемому интервалу
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
