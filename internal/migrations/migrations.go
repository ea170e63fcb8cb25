// Package migrations applies the relational schema at startup. Statements
// are idempotent and run in declaration order over a database/sql handle.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		type_id INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pairs (
		id BIGSERIAL PRIMARY KEY,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		is_one_way BOOLEAN NOT NULL,
		is_roundtrip BOOLEAN NOT NULL,
		f_carrier TEXT NOT NULL,
		UNIQUE (origin, destination)
	)`,
	`CREATE TABLE IF NOT EXISTS flights (
		id BIGSERIAL PRIMARY KEY,
		pair_id BIGINT NOT NULL REFERENCES pairs (id),
		dep_datetime TEXT NOT NULL,
		arr_datetime TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		currency TEXT NOT NULL,
		cabin INT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS flights_pair_id_idx ON flights (pair_id)`,
}

func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
