// Package store owns database connectivity. A DB wraps a pgx pool; every
// unit of work acquires a Session, runs its statements through it and
// releases it on all exit paths.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	pool *pgxpool.Pool
}

// Open establishes the pool and verifies the store is reachable with the
// given credentials before anything is served.
func Open(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Session acquires a dedicated connection. The caller must Close it; a
// Session is never shared between concurrent callers.
func (db *DB) Session(ctx context.Context) (*Session, error) {
	conn, err := db.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire session: %w", err)
	}
	return &Session{conn: conn}, nil
}

func (db *DB) Close() {
	db.pool.Close()
}
