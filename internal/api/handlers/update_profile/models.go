package update_profile

import "github.com/m04kA/SMC-ParkingService/internal/service/users/models"

// UpdateProfileRequest HTTP request model, все поля опциональны
type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	CurrentPassword *string `json:"currentPassword,omitempty"`
	NewPassword     *string `json:"newPassword,omitempty" validate:"omitempty,max=72"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateProfileRequest) ToServiceRequest() *models.UpdateProfileRequest {
	return &models.UpdateProfileRequest{
		Name:            r.Name,
		Email:           r.Email,
		CurrentPassword: r.CurrentPassword,
		NewPassword:     r.NewPassword,
	}
}
