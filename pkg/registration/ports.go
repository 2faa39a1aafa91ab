package registration

import "context"

// IdentityProvider abstracts the service of record for accounts.
// Implementations report provider-side failures as *ProviderError.
type IdentityProvider interface {
	CreateUser(ctx context.Context, user NewUser) (UserRecord, error)
	GenerateEmailVerificationLink(ctx context.Context, email string) (string, error)
}

// EmailSender delivers the welcome email carrying the verification link.
type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, email, displayName, verificationLink string) error
}

// Validator checks a request against the registration rule set.
// It returns *ValidationError when any rule fails.
type Validator interface {
	Validate(req Request) error
}

// IDGenerator produces identifiers for new accounts.
type IDGenerator func() (string, error)
