package domain

import (
	"errors"
	"time"
)

const (
	RoleStudent   = "student"
	RoleLibrarian = "librarian"
	RoleAdmin     = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username taken")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleLibrarian || role == RoleAdmin
}

// User models an account in the library system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
