package entity

import "time"

// User representa un usuario del sistema. Es dueño de a lo sumo una Store.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
