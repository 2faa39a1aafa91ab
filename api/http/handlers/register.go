package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/juanlvs21/sanble-functions/api/http/middleware"
	"github.com/juanlvs21/sanble-functions/api/http/presenter"
	"github.com/juanlvs21/sanble-functions/pkg/registration"
	"github.com/juanlvs21/sanble-functions/pkg/validation"
)

// Response messages. The English message and Spanish data strings are part of
// the public contract and must stay byte-for-byte stable.
const (
	msgRegistered       = "Successfully registered user"
	msgValidation       = "Fields validation error"
	msgPasswordMismatch = "The password does not match"
	msgEmailExists      = "Firebase:auth/email-already-exists"
	msgProviderInternal = "Firebase:auth/internal-error"
	msgProviderUnknown  = "Firebase:Unknown error"
	msgInternal         = "Internal Server Error"
	msgMethodNotAllowed = "Method Not Allowed"

	dataPasswordMismatch = "La contraseña no coincide"
	dataEmailExists      = "El correo electrónico ya se encuentra en uso."
	dataProviderInternal = "Error interno del servidor."
	dataProviderUnknown  = "Error desconocido."
)

type RegisterHandler struct {
	useCase   registration.UseCase
	validator registration.Validator
}

func NewRegisterHandler(useCase registration.UseCase) *RegisterHandler {
	return &RegisterHandler{useCase: useCase, validator: validation.New()}
}

// Preflight answers OPTIONS with 200 and no body.
// @Summary Registration preflight
// @Tags    auth
// @Success 200
// @Router  /auth/register [options]
func (h *RegisterHandler) Preflight(c *fiber.Ctx) error {
	c.Status(http.StatusOK)
	return nil
}

// Register creates an account and sends the welcome email.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registration.Request true "registration payload"
// @Success 201 {object} presenter.Envelope{data=handlers.RegisteredUser}
// @Failure 422 {object} presenter.Envelope
// @Failure 500 {object} presenter.Envelope
// @Router  /auth/register [post]
func (h *RegisterHandler) Register(c *fiber.Ctx) error {
	req, typeErrs, err := decodeRegistration(c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	if len(typeErrs) > 0 {
		return h.fail(c, h.mergeTypeErrors(req, typeErrs))
	}

	user, err := h.useCase.Register(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}

	middleware.Logger(c).Info("user registered", "uid", user.UID)
	return presenter.Respond(c, http.StatusCreated, msgRegistered, RegisteredUser{User: user})
}

// RegisteredUser is the data payload of a successful registration or verification.
type RegisteredUser struct {
	User registration.UserRecord `json:"user"`
}

// MethodNotAllowed answers any method the route does not serve.
func MethodNotAllowed(c *fiber.Ctx) error {
	return presenter.Error(c, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

// decodeRegistration parses the body as JSON whatever the declared content type.
// An empty body or a non-object JSON value decodes to an empty request, which
// the rule set then rejects field by field. Fields holding a non-string value
// are left empty and reported as type errors in struct order.
func decodeRegistration(body []byte) (registration.Request, []registration.FieldError, error) {
	var req registration.Request
	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return req, nil, nil
		}
		return req, nil, err
	}

	var typeErrs []registration.FieldError
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"displayName", &req.DisplayName},
		{"email", &req.Email},
		{"password", &req.Password},
		{"confirmPassword", &req.ConfirmPassword},
	} {
		value, ok := lookupField(raw, f.name)
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, f.dst); err != nil {
			*f.dst = ""
			typeErrs = append(typeErrs, validation.FieldError(f.name, validation.RuleType))
		}
	}
	return req, typeErrs, nil
}

// lookupField matches keys the way encoding/json does: exact name first, then
// case-insensitively.
func lookupField(raw map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if v, ok := raw[name]; ok {
		return v, true
	}
	for k, v := range raw {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// mergeTypeErrors runs the rule set over a partly decoded request and swaps the
// rule failure of every mistyped field for its type error.
func (h *RegisterHandler) mergeTypeErrors(req registration.Request, typeErrs []registration.FieldError) error {
	byField := make(map[string]registration.FieldError, len(typeErrs))
	for _, fe := range typeErrs {
		byField[fe.Field] = fe
	}

	out := &registration.ValidationError{}
	err := h.validator.Validate(req)
	var verr *registration.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		for _, fe := range verr.Fields {
			if typed, ok := byField[fe.Field]; ok {
				out.Fields = append(out.Fields, typed)
				delete(byField, fe.Field)
				continue
			}
			out.Fields = append(out.Fields, fe)
		}
	default:
		return err
	}
	for _, fe := range typeErrs {
		if _, ok := byField[fe.Field]; ok {
			out.Fields = append(out.Fields, fe)
		}
	}
	return out
}

func (h *RegisterHandler) fail(c *fiber.Ctx, err error) error {
	log := middleware.Logger(c)

	var verr *registration.ValidationError
	var perr *registration.ProviderError
	switch {
	case errors.As(err, &verr):
		log.Info("registration rejected", "reason", "validation", "fields", len(verr.Fields))
		return presenter.Respond(c, http.StatusUnprocessableEntity, msgValidation, verr.Fields)
	case errors.Is(err, registration.ErrPasswordMismatch):
		log.Info("registration rejected", "reason", "password_mismatch")
		return presenter.Respond(c, http.StatusUnprocessableEntity, msgPasswordMismatch, []string{dataPasswordMismatch})
	case errors.As(err, &perr):
		switch perr.Kind {
		case registration.ProviderDuplicateEmail:
			log.Info("registration rejected", "reason", "duplicate_email")
			return presenter.Respond(c, http.StatusUnprocessableEntity, msgEmailExists, []string{dataEmailExists})
		case registration.ProviderInternal:
			log.Error("identity provider internal error", "code", perr.Code, "error", err)
			return presenter.Respond(c, http.StatusInternalServerError, msgProviderInternal, []string{dataProviderInternal})
		default:
			log.Error("identity provider error", "code", perr.Code, "error", err)
			return presenter.Respond(c, http.StatusInternalServerError, msgProviderUnknown, []string{dataProviderUnknown})
		}
	default:
		log.Error("registration failed", "error", err)
		return presenter.Error(c, http.StatusInternalServerError, msgInternal)
	}
}
