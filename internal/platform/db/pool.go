package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns = 8
	defaultMinConns = 2

	pingTimeout       = 5 * time.Second
	healthCheckPeriod = 30 * time.Second
)

// clampConns fills in pool-size defaults and keeps min from exceeding max.
func clampConns(maxConns, minConns int32) (int32, int32) {
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	if minConns <= 0 {
		minConns = defaultMinConns
	}
	if minConns > maxConns {
		minConns = maxConns
	}
	return maxConns, minConns
}

// NewPool opens a pgx connection pool against the portal database and
// verifies connectivity before returning it. The ping is bounded so a
// wrong DATABASE_URL fails fast instead of hanging startup.
func NewPool(ctx context.Context, databaseURL string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns, cfg.MinConns = clampConns(maxConns, minConns)
	cfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
