package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// ListLocationsRequest поиск локаций
type ListLocationsRequest struct {
	Query string
	Type  *string
	Page  int
	Limit int
}

// CreateLocationRequest создание локации
type CreateLocationRequest struct {
	Name       string
	Address    string
	Type       string
	TotalSlots int
}

// UpdateLocationRequest частичное обновление локации, nil - поле не меняется
type UpdateLocationRequest struct {
	Name       *string
	Address    *string
	Type       *string
	TotalSlots *int
}

// Response модели

// LocationResponse локация
type LocationResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Type         string    `json:"type"`
	TotalSlots   int       `json:"totalSlots"`
	AvailableNow *int      `json:"availableNow,omitempty"` // Свободно на ближайший час
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LocationListResponse страница локаций
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Total int64              `json:"total"`
}

// FromDomainLocation конвертирует domain модель в DTO
func FromDomainLocation(l *domain.Location) *LocationResponse {
	if l == nil {
		return nil
	}

	return &LocationResponse{
		ID:         l.ID,
		Name:       l.Name,
		Address:    l.Address,
		Type:       string(l.Type),
		TotalSlots: l.TotalSlots,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}
