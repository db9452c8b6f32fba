package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAgent   = "agent"
)

// User is a system account: back-office admin or affiliate partner.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plain after persistence
	Name         string
	Role         string // admin, manager, agent
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
