package local

import "time"

// User is an account stored by the local identity provider.
type User struct {
	ID            string
	Email         string
	DisplayName   string
	PasswordHash  string
	EmailVerified bool
	Disabled      bool
	CreatedAt     time.Time
	LastSignInAt  time.Time
	UpdatedAt     time.Time
}
