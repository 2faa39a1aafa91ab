package checkers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type slowPinger struct{}

func (slowPinger) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestPostgresCheckerAppliesTimeout(t *testing.T) {
	c := NewPostgresChecker(slowPinger{})
	c.timeout = 10 * time.Millisecond

	err := c.Check(context.Background())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "postgres", c.Name())
}
