package identity

import "time"

// User represents a registered account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Points       int64
	LastSeen     time.Time
	CreatedAt    time.Time
}

// Credentials carries a login attempt.
type Credentials struct {
	Email    string
	Password string
}
