package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanlvs21/sanble-functions/pkg/registration"
	"github.com/juanlvs21/sanble-functions/pkg/validation"
)

func TestDecodeRegistration(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		req, typeErrs, err := decodeRegistration([]byte(`{"displayName":"Ana","email":"ana@example.com","password":"p","confirmPassword":"p","extra":1}`))
		require.NoError(t, err)
		assert.Empty(t, typeErrs)
		assert.Equal(t, registration.Request{
			DisplayName:     "Ana",
			Email:           "ana@example.com",
			Password:        "p",
			ConfirmPassword: "p",
		}, req)
	})

	t.Run("keys match case-insensitively", func(t *testing.T) {
		req, typeErrs, err := decodeRegistration([]byte(`{"Email":"ana@example.com","DISPLAYNAME":"Ana"}`))
		require.NoError(t, err)
		assert.Empty(t, typeErrs)
		assert.Equal(t, "ana@example.com", req.Email)
		assert.Equal(t, "Ana", req.DisplayName)
	})

	for name, body := range map[string]string{
		"empty":      "",
		"whitespace": " \n\t",
		"null":       "null",
		"string":     `"hello"`,
		"array":      `[1,2]`,
	} {
		t.Run(name, func(t *testing.T) {
			req, typeErrs, err := decodeRegistration([]byte(body))
			require.NoError(t, err)
			assert.Empty(t, typeErrs)
			assert.Equal(t, registration.Request{}, req)
		})
	}

	t.Run("wrong field types keep the rest", func(t *testing.T) {
		req, typeErrs, err := decodeRegistration([]byte(`{"displayName":7,"email":42,"password":"weak","confirmPassword":null}`))
		require.NoError(t, err)

		require.Len(t, typeErrs, 2)
		assert.Equal(t, "displayName", typeErrs[0].Field)
		assert.Equal(t, "email", typeErrs[1].Field)
		for _, fe := range typeErrs {
			assert.Equal(t, validation.RuleType, fe.Rule)
		}
		assert.Equal(t, registration.Request{Password: "weak"}, req)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, _, err := decodeRegistration([]byte(`{"email":`))

		var syntaxErr *json.SyntaxError
		assert.ErrorAs(t, err, &syntaxErr)
	})
}

func TestMergeTypeErrors(t *testing.T) {
	h := NewRegisterHandler(nil)

	err := h.mergeTypeErrors(
		registration.Request{Password: "weak"},
		[]registration.FieldError{validation.FieldError("email", validation.RuleType)},
	)

	var verr *registration.ValidationError
	require.ErrorAs(t, err, &verr)
	got := make([][2]string, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		got = append(got, [2]string{fe.Field, fe.Rule})
	}
	assert.Equal(t, [][2]string{
		{"displayName", validation.RuleRequired},
		{"email", validation.RuleType},
		{"password", validation.RulePassword},
		{"confirmPassword", validation.RuleRequired},
	}, got)
}
