package registration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// UseCase describes the account registration behavior.
type UseCase interface {
	Register(ctx context.Context, req Request) (UserRecord, error)
}

type service struct {
	validator Validator
	provider  IdentityProvider
	mailer    EmailSender
	newID     IDGenerator
	log       *slog.Logger
}

// Option customizes the default service.
type Option func(*service)

// WithIDGenerator replaces the time-ordered UUID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *service) { s.newID = gen }
}

// WithLogger sets the logger used for post-creation failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *service) { s.log = log }
}

// NewService returns the default implementation of UseCase.
func NewService(validator Validator, provider IdentityProvider, mailer EmailSender, opts ...Option) UseCase {
	s := &service{
		validator: validator,
		provider:  provider,
		mailer:    mailer,
		newID:     NewTimeOrderedID,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTimeOrderedID returns a UUIDv7 string.
func NewTimeOrderedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Register validates the request, creates the account, and sends the welcome
// email. Calls run strictly in sequence and are never retried. A failure after
// the account was created does not remove it.
func (s *service) Register(ctx context.Context, req Request) (UserRecord, error) {
	if err := s.validator.Validate(req); err != nil {
		return UserRecord{}, err
	}
	if req.Password != req.ConfirmPassword {
		return UserRecord{}, ErrPasswordMismatch
	}

	uid, err := s.newID()
	if err != nil {
		return UserRecord{}, fmt.Errorf("generate uid: %w", err)
	}

	user, err := s.provider.CreateUser(ctx, NewUser{
		UID:           uid,
		Email:         req.Email,
		EmailVerified: false,
		Password:      req.Password,
		DisplayName:   req.DisplayName,
		Disabled:      false,
	})
	if err != nil {
		return UserRecord{}, fmt.Errorf("create user: %w", err)
	}

	link, err := s.provider.GenerateEmailVerificationLink(ctx, user.Email)
	if err != nil {
		s.log.WarnContext(ctx, "account created without verification link", "uid", user.UID, "error", err)
		return UserRecord{}, fmt.Errorf("generate verification link: %w", err)
	}

	if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.DisplayName, link); err != nil {
		s.log.WarnContext(ctx, "account created but welcome email failed", "uid", user.UID, "error", err)
		return UserRecord{}, fmt.Errorf("send welcome email: %w", err)
	}

	return user, nil
}
