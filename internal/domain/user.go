package domain

import "time"

// Role роль пользователя
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User пользователь сервиса
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin true для администратора
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
