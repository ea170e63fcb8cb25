package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Session is one borrowed connection. All operations block the caller
// until the store responds; no retries happen at this level, failures
// propagate to the caller as terminal for the request.
type Session struct {
	conn *pgxpool.Conn
}

// Query executes a read-only statement as given. The returned rows are a
// lazy forward-only stream; a second pass requires re-issuing the query.
func (s *Session) Query(ctx context.Context, sql string) (pgx.Rows, error) {
	rows, err := s.conn.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return rows, nil
}

// QueryParams executes a parameterized read with positional bindings.
func (s *Session) QueryParams(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return rows, nil
}

// QueryRow executes a parameterized single-row read. Scan surfaces
// pgx.ErrNoRows when nothing matched.
func (s *Session) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return s.conn.QueryRow(ctx, sql, args...)
}

// Exec executes a parameterized write and reports the rows affected.
func (s *Session) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := s.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Close releases the connection back to the pool. Safe to call more than
// once; only the first call releases.
func (s *Session) Close() {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}
}
