package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name   string
	err    error
	called bool
}

func (c *stubChecker) Name() string { return c.name }

func (c *stubChecker) Check(context.Context) error {
	c.called = true
	return c.err
}

func TestReadyWithoutCheckers(t *testing.T) {
	require.NoError(t, NewService().Ready(context.Background()))
}

func TestReadyStopsAtFirstFailure(t *testing.T) {
	down := errors.New("connection refused")
	first := &stubChecker{name: "postgres", err: down}
	second := &stubChecker{name: "other"}

	err := NewService(first, second).Ready(context.Background())

	require.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "postgres")
	assert.False(t, second.called)
}
