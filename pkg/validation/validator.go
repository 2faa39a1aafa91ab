// Package validation checks registration payloads with go-playground/validator
// and reports failures as registration.FieldError values keyed by JSON name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/juanlvs21/sanble-functions/pkg/registration"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 128
)

// Rule names as they appear in FieldError.Rule.
const (
	RuleRequired = "required"
	RuleEmail    = "email"
	RulePassword = "password"
	RuleType     = "type"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	// RegisterValidation only fails for empty tags or a nil func.
	_ = v.RegisterValidation(RulePassword, func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	return &Validator{v: v}
}

// Validate returns *registration.ValidationError listing every failed field.
func (v *Validator) Validate(req registration.Request) error {
	err := v.v.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &registration.ValidationError{Fields: make([]registration.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError(fe.Field(), fe.Tag()))
	}
	return out
}

// StrongPassword enforces the password policy: 8 to 128 characters with at
// least one lower-case letter, one upper-case letter and one digit.
func StrongPassword(pw string) bool {
	n := len([]rune(pw))
	if n < minPasswordLen || n > maxPasswordLen {
		return false
	}
	var lower, upper, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// FieldError builds the user-facing error for a failed rule.
func FieldError(field, rule string) registration.FieldError {
	return registration.FieldError{Field: field, Rule: rule, Message: message(field, rule)}
}

func message(field, rule string) string {
	switch rule {
	case RuleRequired:
		return fmt.Sprintf("El campo %s es obligatorio.", field)
	case RuleEmail:
		return fmt.Sprintf("El campo %s debe ser un correo electrónico válido.", field)
	case RulePassword:
		return fmt.Sprintf("La contraseña debe tener entre %d y %d caracteres e incluir mayúsculas, minúsculas y números.", minPasswordLen, maxPasswordLen)
	case RuleType:
		return fmt.Sprintf("El campo %s debe ser texto.", field)
	default:
		return fmt.Sprintf("El campo %s no es válido.", field)
	}
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
