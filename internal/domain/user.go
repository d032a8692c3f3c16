package domain

import "time"

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleAttendant Role = "ATENDENTE"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// City is an admin-managed service city. ID is the canonical city code.
type City struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
