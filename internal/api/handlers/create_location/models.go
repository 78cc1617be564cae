package create_location

import "github.com/m04kA/SMC-ParkingService/internal/service/locations/models"

// CreateLocationRequest HTTP request model
type CreateLocationRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Address    string `json:"address" validate:"required,max=255"`
	Type       string `json:"type" validate:"required,oneof=MALL BANDARA GEDUNG"`
	TotalSlots int    `json:"totalSlots" validate:"required,min=1,max=999"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateLocationRequest) ToServiceRequest() *models.CreateLocationRequest {
	return &models.CreateLocationRequest{
		Name:       r.Name,
		Address:    r.Address,
		Type:       r.Type,
		TotalSlots: r.TotalSlots,
	}
}
