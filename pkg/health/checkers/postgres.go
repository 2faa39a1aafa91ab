package checkers

import (
	"context"
	"time"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// PostgresChecker pings the pool backing the local identity provider.
type PostgresChecker struct {
	pool    pinger
	timeout time.Duration
}

func NewPostgresChecker(pool pinger) *PostgresChecker {
	return &PostgresChecker{pool: pool, timeout: time.Second}
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.pool.Ping(ctx)
}
