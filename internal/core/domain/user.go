package domain

import "time"

// Role enumerates the authorization roles a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User mirrors the persisted representation in the users table.
// The password is stored only as a salted hash and is never serialized.
type User struct {
	ID            int64
	Username      string
	Email         string
	Name          string
	PasswordHash  string
	Role          Role
	Active        bool
	LastLoginDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
