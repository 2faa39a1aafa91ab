// Package local implements registration.IdentityProvider on top of the
// service's own PostgreSQL users table.
package local

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/juanlvs21/sanble-functions/pkg/registration"
)

// CodeUserNotFound is reported when a link is requested for an unknown address.
const CodeUserNotFound = "auth/user-not-found"

type Provider struct {
	users      UserRepository
	tokens     TokenIssuer
	verifyURL  string
	bcryptCost int
	now        func() time.Time
}

type Option func(*Provider)

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(p *Provider) { p.bcryptCost = cost }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// NewProvider builds a provider whose verification links point at verifyURL.
func NewProvider(users UserRepository, tokens TokenIssuer, verifyURL string, opts ...Option) *Provider {
	p := &Provider{
		users:      users,
		tokens:     tokens,
		verifyURL:  verifyURL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) CreateUser(ctx context.Context, u registration.NewUser) (registration.UserRecord, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), p.bcryptCost)
	if err != nil {
		return registration.UserRecord{}, registration.NewInternalProviderError(fmt.Errorf("hash password: %w", err))
	}
	now := p.now().UTC()
	user := User{
		ID:            u.UID,
		Email:         strings.ToLower(strings.TrimSpace(u.Email)),
		DisplayName:   u.DisplayName,
		PasswordHash:  string(hash),
		EmailVerified: u.EmailVerified,
		Disabled:      u.Disabled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := p.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return registration.UserRecord{}, registration.NewDuplicateEmailError(err)
		}
		return registration.UserRecord{}, registration.NewInternalProviderError(err)
	}
	return toUserRecord(user), nil
}

func (p *Provider) GenerateEmailVerificationLink(ctx context.Context, email string) (string, error) {
	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", registration.NewUnknownProviderError(CodeUserNotFound, err)
		}
		return "", registration.NewInternalProviderError(err)
	}
	token, err := p.tokens.Issue(user.Email)
	if err != nil {
		return "", registration.NewInternalProviderError(fmt.Errorf("sign verification token: %w", err))
	}
	return p.verifyURL + "?token=" + url.QueryEscape(token), nil
}

// VerifyEmail marks the address bound to token as verified.
// It returns ErrInvalidToken or ErrNotFound for caller-correctable failures.
func (p *Provider) VerifyEmail(ctx context.Context, token string) (registration.UserRecord, error) {
	email, err := p.tokens.Parse(token)
	if err != nil {
		return registration.UserRecord{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	user, err := p.users.MarkEmailVerified(ctx, email)
	if err != nil {
		return registration.UserRecord{}, err
	}
	return toUserRecord(user), nil
}

func toUserRecord(u User) registration.UserRecord {
	return registration.UserRecord{
		UID:           u.ID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		DisplayName:   u.DisplayName,
		Disabled:      u.Disabled,
		Metadata:      registration.NewUserMetadata(u.CreatedAt, u.LastSignInAt, time.Time{}),
	}
}
