package domain

import "time"

// User represents an account. The password hash is opaque to everything
// except pkg/crypto and never leaves the process.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
