package firebase

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanlvs21/sanble-functions/pkg/registration"
)

type fakeAuthClient struct {
	params  *auth.UserToCreate
	record  *auth.UserRecord
	link    string
	linkFor string
	err     error
}

func (f *fakeAuthClient) CreateUser(_ context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
	f.params = user
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func (f *fakeAuthClient) EmailVerificationLink(_ context.Context, email string) (string, error) {
	f.linkFor = email
	if f.err != nil {
		return "", f.err
	}
	return f.link, nil
}

func TestCreateUserMapsRecord(t *testing.T) {
	created := time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)
	client := &fakeAuthClient{record: &auth.UserRecord{
		UserInfo: &auth.UserInfo{
			UID:         "uid-1",
			Email:       "ana@example.com",
			DisplayName: "Ana",
		},
		UserMetadata: &auth.UserMetadata{CreationTimestamp: created.UnixMilli()},
	}}
	p := NewWithClient(client)

	rec, err := p.CreateUser(context.Background(), registration.NewUser{
		UID:         "uid-1",
		Email:       "ana@example.com",
		Password:    "Secret123",
		DisplayName: "Ana",
	})
	require.NoError(t, err)

	require.NotNil(t, client.params)
	assert.Equal(t, registration.UserRecord{
		UID:         "uid-1",
		Email:       "ana@example.com",
		DisplayName: "Ana",
		Metadata:    registration.UserMetadata{CreationTime: "Sun, 18 Oct 2026 12:30:00 UTC"},
	}, rec)
}

func TestCreateUserUnknownError(t *testing.T) {
	cause := errors.New("quota exceeded")
	p := NewWithClient(&fakeAuthClient{err: cause})

	_, err := p.CreateUser(context.Background(), registration.NewUser{UID: "uid-1"})

	var perr *registration.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, registration.ProviderUnknown, perr.Kind)
	assert.Equal(t, CodeUnknown, perr.Code)
	assert.ErrorIs(t, err, cause)
}

func TestCreateUserTransportErrorIsUnknown(t *testing.T) {
	cause := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	p := NewWithClient(&fakeAuthClient{err: fmt.Errorf("post identitytoolkit: %w", cause)})

	_, err := p.CreateUser(context.Background(), registration.NewUser{UID: "uid-1"})

	var perr *registration.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, registration.ProviderUnknown, perr.Kind)
	var opErr *net.OpError
	assert.ErrorAs(t, err, &opErr)
}

func TestContextErrorsAreNotProviderErrors(t *testing.T) {
	p := NewWithClient(&fakeAuthClient{err: fmt.Errorf("post: %w", context.DeadlineExceeded)})

	_, err := p.GenerateEmailVerificationLink(context.Background(), "ana@example.com")

	require.ErrorIs(t, err, context.DeadlineExceeded)
	var perr *registration.ProviderError
	assert.False(t, errors.As(err, &perr))
}

func TestGenerateEmailVerificationLink(t *testing.T) {
	client := &fakeAuthClient{link: "https://sanble.firebaseapp.com/__/auth/action?mode=verifyEmail&oobCode=abc"}
	p := NewWithClient(client)

	link, err := p.GenerateEmailVerificationLink(context.Background(), "ana@example.com")

	require.NoError(t, err)
	assert.Equal(t, client.link, link)
	assert.Equal(t, "ana@example.com", client.linkFor)
}

func TestToUserRecordNil(t *testing.T) {
	assert.Equal(t, registration.UserRecord{}, toUserRecord(nil))
}
