package registration

import (
	"errors"
	"fmt"
)

// ErrPasswordMismatch is returned when confirmPassword differs from password.
var ErrPasswordMismatch = errors.New("password does not match")

// FieldError describes one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError aggregates all field errors found in a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Rule)
}

// ProviderErrorKind classifies failures reported by an identity provider.
type ProviderErrorKind int

const (
	ProviderUnknown ProviderErrorKind = iota
	ProviderDuplicateEmail
	ProviderInternal
)

func (k ProviderErrorKind) String() string {
	switch k {
	case ProviderDuplicateEmail:
		return "duplicate_email"
	case ProviderInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Provider error codes, in the form the identity provider reports them.
const (
	CodeEmailAlreadyExists = "auth/email-already-exists"
	CodeInternalError      = "auth/internal-error"
)

// ProviderError is a failed identity provider call. Transport and storage
// failures are ProviderErrors too, classified as Unknown or Internal by the
// backend. The Firebase backend passes context cancellation through unwrapped.
type ProviderError struct {
	Kind ProviderErrorKind
	Code string
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("identity provider: %s (%s)", e.Kind, e.Code)
	}
	return fmt.Sprintf("identity provider: %s (%s): %v", e.Kind, e.Code, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewDuplicateEmailError reports an email already registered with the provider.
func NewDuplicateEmailError(err error) *ProviderError {
	return &ProviderError{Kind: ProviderDuplicateEmail, Code: CodeEmailAlreadyExists, Err: err}
}

// NewInternalProviderError reports a provider-side internal failure.
func NewInternalProviderError(err error) *ProviderError {
	return &ProviderError{Kind: ProviderInternal, Code: CodeInternalError, Err: err}
}

// NewUnknownProviderError reports a provider error with an unrecognised code.
func NewUnknownProviderError(code string, err error) *ProviderError {
	return &ProviderError{Kind: ProviderUnknown, Code: code, Err: err}
}
