package domain

import "time"

// Роли пользователей хранятся свободной строкой.
const (
	RoleAdmin  = "Admin"
	RoleSeller = "Seller"
)

// User представляет учётную запись сотрудника бэк-офиса.
type User struct {
	ID   string
	Name string
	// UserName — уникальный логин.
	UserName string
	Email    string
	// PasswordHash — bcrypt-хэш; открытый пароль никогда не сохраняется.
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
