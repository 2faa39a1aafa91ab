package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanlvs21/sanble-functions/pkg/registration"
)

func validRequest() registration.Request {
	return registration.Request{
		DisplayName:     "Ana",
		Email:           "ana@example.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	}
}

func fieldRules(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *registration.ValidationError
	require.ErrorAs(t, err, &verr)
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		assert.NotEmpty(t, f.Message)
		out[f.Field] = f.Rule
	}
	return out
}

func TestValidateAcceptsValidRequest(t *testing.T) {
	require.NoError(t, New().Validate(validRequest()))
}

func TestValidateEmptyRequestReportsEveryField(t *testing.T) {
	rules := fieldRules(t, New().Validate(registration.Request{}))

	assert.Equal(t, map[string]string{
		"displayName":     RuleRequired,
		"email":           RuleRequired,
		"password":        RuleRequired,
		"confirmPassword": RuleRequired,
	}, rules)
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*registration.Request)
		field  string
		rule   string
	}{
		{"missing email", func(r *registration.Request) { r.Email = "" }, "email", RuleRequired},
		{"malformed email", func(r *registration.Request) { r.Email = "ana@" }, "email", RuleEmail},
		{"weak password", func(r *registration.Request) { r.Password = "secret"; r.ConfirmPassword = "secret" }, "password", RulePassword},
		{"missing confirmation", func(r *registration.Request) { r.ConfirmPassword = "" }, "confirmPassword", RuleRequired},
		{"missing display name", func(r *registration.Request) { r.DisplayName = "" }, "displayName", RuleRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			rules := fieldRules(t, New().Validate(req))

			assert.Equal(t, map[string]string{tt.field: tt.rule}, rules)
		})
	}
}

func TestValidateDoesNotCompareConfirmation(t *testing.T) {
	req := validRequest()
	req.ConfirmPassword = "different"
	require.NoError(t, New().Validate(req))
}

func TestStrongPassword(t *testing.T) {
	tests := map[string]bool{
		"Secret123":    true,
		"Contraseña1":  true,
		"Sh0rt":        false,
		"alllower123":  false,
		"ALLUPPER123":  false,
		"NoDigitsHere": false,
		"":             false,
	}
	for pw, want := range tests {
		assert.Equal(t, want, StrongPassword(pw), pw)
	}
}

func TestFieldErrorMessages(t *testing.T) {
	fe := FieldError("email", RuleType)
	assert.Equal(t, "email", fe.Field)
	assert.Equal(t, RuleType, fe.Rule)
	assert.Equal(t, "El campo email debe ser texto.", fe.Message)
}
