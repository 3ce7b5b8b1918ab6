package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the slice of pgxpool behavior the HTTP layer depends on:
// readiness probes ping it, shutdown closes it.
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// NewPool connects a tuned pgxpool and verifies the database is
// reachable before handing it out. maxConns is clamped into
// [DefaultMinConnections, MaxInt32] so a misconfigured value can never
// produce a pool smaller than its floor.
func NewPool(connString string, maxConns int, maxIdle, maxLife time.Duration) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	switch {
	case maxConns > math.MaxInt32:
		maxConns = math.MaxInt32
	case maxConns < DefaultMinConnections:
		maxConns = DefaultMinConnections
	}
	poolCfg.MaxConns = int32(maxConns)
	poolCfg.MinConns = DefaultMinConnections
	poolCfg.MaxConnIdleTime = maxIdle
	poolCfg.MaxConnLifetime = maxLife

	ctx, cancel := context.WithTimeout(context.Background(), ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Info(LogMsgSuccessfullyConnectedToDatabase,
		"max_conns", poolCfg.MaxConns,
		"min_conns", poolCfg.MinConns,
		"max_conn_idle_time", maxIdle.String(),
		"max_conn_lifetime", maxLife.String(),
	)
	return pool, nil
}
