// Package logmail is an EmailSender that only logs, for local development.
package logmail

import (
	"context"
	"log/slog"
)

type Sender struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) SendWelcomeEmail(ctx context.Context, email, displayName, verificationLink string) error {
	s.log.InfoContext(ctx, "welcome email (mock)",
		"to", email,
		"display_name", displayName,
		"verification_link", verificationLink)
	return nil
}
