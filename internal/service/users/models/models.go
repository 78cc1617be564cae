package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// RegisterRequest регистрация
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// LoginRequest вход
type LoginRequest struct {
	Email    string
	Password string
}

// UpdateProfileRequest изменение профиля, nil - поле не меняется
// Для смены пароля нужен текущий пароль
type UpdateProfileRequest struct {
	Name            *string
	Email           *string
	CurrentPassword *string
	NewPassword     *string
}

// Response модели

// UserResponse пользователь без хэша пароля
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse пользователь и выпущенный токен
type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
