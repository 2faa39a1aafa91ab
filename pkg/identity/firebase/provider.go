// Package firebase adapts the Firebase Auth admin client to registration.IdentityProvider.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"time"

	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/errorutils"
	"google.golang.org/api/option"

	"github.com/juanlvs21/sanble-functions/pkg/registration"
)

// CodeUnknown is reported for provider errors that carry no code this service maps.
const CodeUnknown = "auth/unknown"

// authClient is the subset of *auth.Client the provider calls.
type authClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	EmailVerificationLink(ctx context.Context, email string) (string, error)
}

type Provider struct {
	client authClient
}

// New initializes a Firebase app and its Auth client. An empty credentials file
// falls back to Application Default Credentials; an empty project id lets the
// SDK derive it from the credentials or GOOGLE_CLOUD_PROJECT.
func New(ctx context.Context, projectID, credentialsFile string) (*Provider, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	var conf *fb.Config
	if projectID != "" {
		conf = &fb.Config{ProjectID: projectID}
	}
	app, err := fb.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return NewWithClient(client), nil
}

func NewWithClient(client authClient) *Provider {
	return &Provider{client: client}
}

func (p *Provider) CreateUser(ctx context.Context, u registration.NewUser) (registration.UserRecord, error) {
	params := (&auth.UserToCreate{}).
		UID(u.UID).
		Email(u.Email).
		EmailVerified(u.EmailVerified).
		Password(u.Password).
		DisplayName(u.DisplayName).
		Disabled(u.Disabled)

	rec, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return registration.UserRecord{}, classify(err)
	}
	return toUserRecord(rec), nil
}

func (p *Provider) GenerateEmailVerificationLink(ctx context.Context, email string) (string, error) {
	link, err := p.client.EmailVerificationLink(ctx, email)
	if err != nil {
		return "", classify(err)
	}
	return link, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case auth.IsEmailAlreadyExists(err):
		return registration.NewDuplicateEmailError(err)
	case errorutils.IsInternal(err):
		return registration.NewInternalProviderError(err)
	default:
		return registration.NewUnknownProviderError(CodeUnknown, err)
	}
}

func toUserRecord(rec *auth.UserRecord) registration.UserRecord {
	if rec == nil {
		return registration.UserRecord{}
	}
	out := registration.UserRecord{
		EmailVerified: rec.EmailVerified,
		Disabled:      rec.Disabled,
	}
	if rec.UserInfo != nil {
		out.UID = rec.UID
		out.Email = rec.Email
		out.DisplayName = rec.DisplayName
	}
	if md := rec.UserMetadata; md != nil {
		out.Metadata = registration.NewUserMetadata(
			fromMillis(md.CreationTimestamp),
			fromMillis(md.LastLogInTimestamp),
			fromMillis(md.LastRefreshTimestamp),
		)
	}
	return out
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
