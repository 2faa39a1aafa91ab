package local

import (
	"context"
	"errors"
)

// Common errors used by repository/provider
var (
	ErrNotFound          = errors.New("not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidToken      = errors.New("invalid or expired verification token")
)

// UserRepository abstracts persistence of local accounts.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	MarkEmailVerified(ctx context.Context, email string) (User, error)
}

// TokenIssuer signs and verifies email-verification tokens bound to an address.
type TokenIssuer interface {
	Issue(email string) (string, error)
	Parse(token string) (string, error)
}
