package update_location

import "github.com/m04kA/SMC-ParkingService/internal/service/locations/models"

// UpdateLocationRequest HTTP request model, все поля опциональны
type UpdateLocationRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Address    *string `json:"address,omitempty" validate:"omitempty,min=1,max=255"`
	Type       *string `json:"type,omitempty" validate:"omitempty,oneof=MALL BANDARA GEDUNG"`
	TotalSlots *int    `json:"totalSlots,omitempty" validate:"omitempty,min=1,max=999"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateLocationRequest) ToServiceRequest() *models.UpdateLocationRequest {
	return &models.UpdateLocationRequest{
		Name:       r.Name,
		Address:    r.Address,
		Type:       r.Type,
		TotalSlots: r.TotalSlots,
	}
}
