package domain

import "time"

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleClub    UserRole = "club"
	UserRoleAdmin   UserRole = "admin"
)

// User represents an authenticated account within the platform.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user can perform moderation actions.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
