package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/juanlvs21/sanble-functions/api/http/middleware"
	"github.com/juanlvs21/sanble-functions/api/http/presenter"
	"github.com/juanlvs21/sanble-functions/pkg/identity/local"
	"github.com/juanlvs21/sanble-functions/pkg/registration"
	"github.com/juanlvs21/sanble-functions/pkg/validation"
)

// EmailVerifier confirms an address from a verification token.
type EmailVerifier interface {
	VerifyEmail(ctx context.Context, token string) (registration.UserRecord, error)
}

// VerifyHandler serves the verification links issued by the local provider.
type VerifyHandler struct {
	verifier EmailVerifier
}

func NewVerifyHandler(verifier EmailVerifier) *VerifyHandler {
	return &VerifyHandler{verifier: verifier}
}

// Verify marks the account's email as verified.
// @Summary Verify email
// @Tags    auth
// @Produce json
// @Param   token query string true "verification token"
// @Success 200 {object} presenter.Envelope{data=handlers.RegisteredUser}
// @Failure 404 {object} presenter.Envelope
// @Failure 422 {object} presenter.Envelope
// @Router  /auth/verify [get]
func (h *VerifyHandler) Verify(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return presenter.Respond(c, http.StatusUnprocessableEntity, msgValidation,
			[]registration.FieldError{validation.FieldError("token", validation.RuleRequired)})
	}

	user, err := h.verifier.VerifyEmail(c.UserContext(), token)
	log := middleware.Logger(c)
	switch {
	case err == nil:
		log.Info("email verified", "uid", user.UID)
		return presenter.Respond(c, http.StatusOK, "Email verified", RegisteredUser{User: user})
	case errors.Is(err, local.ErrInvalidToken):
		log.Info("verification rejected", "error", err)
		return presenter.Respond(c, http.StatusUnprocessableEntity, "Invalid verification token",
			[]string{"El enlace de verificación no es válido o ha expirado."})
	case errors.Is(err, local.ErrNotFound):
		return presenter.Respond(c, http.StatusNotFound, "User not found", []string{"Usuario no encontrado."})
	default:
		log.Error("email verification failed", "error", err)
		return presenter.Error(c, http.StatusInternalServerError, msgInternal)
	}
}
