package logmail

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendWelcomeEmailLogs(t *testing.T) {
	var buf bytes.Buffer
	s := New(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, s.SendWelcomeEmail(context.Background(), "ana@example.com", "Ana", "https://x/verify"))

	out := buf.String()
	assert.Contains(t, out, `"to":"ana@example.com"`)
	assert.Contains(t, out, `"verification_link":"https://x/verify"`)
}
