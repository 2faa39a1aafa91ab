package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanlvs21/sanble-functions/pkg/identity/local"
	"github.com/juanlvs21/sanble-functions/pkg/registration"
)

type stubVerifier struct {
	user registration.UserRecord
	err  error
	got  string
}

func (s *stubVerifier) VerifyEmail(_ context.Context, token string) (registration.UserRecord, error) {
	s.got = token
	return s.user, s.err
}

func verify(t *testing.T, v EmailVerifier, query string) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/verify", NewVerifyHandler(v).Verify)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/verify"+query, nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		err     error
		status  int
		message string
	}{
		{"verified", "?token=abc", nil, http.StatusOK, "Email verified"},
		{"missing token", "", nil, http.StatusUnprocessableEntity, "Fields validation error"},
		{"bad token", "?token=abc", fmt.Errorf("%w: expired", local.ErrInvalidToken), http.StatusUnprocessableEntity, "Invalid verification token"},
		{"unknown user", "?token=abc", local.ErrNotFound, http.StatusNotFound, "User not found"},
		{"storage down", "?token=abc", errors.New("conn refused"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &stubVerifier{user: registration.UserRecord{UID: "uid-1", EmailVerified: true}, err: tt.err}

			status, body := verify(t, v, tt.query)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, body["message"])
			assert.EqualValues(t, tt.status, body["statusCode"])
		})
	}
}

func TestVerifyPassesTokenThrough(t *testing.T) {
	v := &stubVerifier{user: registration.UserRecord{UID: "uid-1", EmailVerified: true}}

	_, body := verify(t, v, "?token=a%2Bb")

	assert.Equal(t, "a+b", v.got)
	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, true, user["emailVerified"])
}
