package repository

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/mkolev/routecatalog/internal/domain"
	"github.com/mkolev/routecatalog/internal/store"
)

type PairRepository interface {
	Insert(ctx context.Context, pair domain.Pair) error
	Get(ctx context.Context, origin, destination string) (*domain.Pair, error)
	Find(ctx context.Context, origin, destination string) ([]domain.Pair, error)
	List(ctx context.Context) ([]domain.Pair, error)
}

type PGPairRepository struct {
	db   *store.DB
	mode QueryMode
}

func NewPairRepository(db *store.DB, mode QueryMode) PairRepository {
	return &PGPairRepository{db: db, mode: mode}
}

// Insert checks for an existing (origin, destination) tuple first and
// fails with a conflict if one is present. The check and the insert are
// not transactional; a concurrent insert between the two can still hit
// the UNIQUE constraint, which surfaces as an internal store failure.
func (r *PGPairRepository) Insert(ctx context.Context, pair domain.Pair) error {
	_, err := r.Get(ctx, pair.Origin, pair.Destination)
	if err == nil {
		return domain.Conflict("pair already exists")
	}
	if domain.StatusOf(err) != http.StatusNotFound {
		return err
	}

	sess, err := r.db.Session(ctx)
	if err != nil {
		return domain.Internalf("insert pair: %v", err)
	}
	defer sess.Close()

	if r.mode == ModeConcatenated {
		query := insertPairSQL(pair)
		log.Debug().Str("query", query).Msg("executing concatenated insert")
		_, err = sess.Exec(ctx, query)
	} else {
		_, err = sess.Exec(ctx, insertPairStmt,
			pair.Origin, pair.Destination, pair.IsOneWay, pair.IsRoundtrip, pair.FareCarrier)
	}
	if err != nil {
		return domain.Internalf("insert pair: %v", err)
	}
	return nil
}

// Get returns the single pair matching the tuple exactly, or a not-found
// failure. The conflict check in Insert relies on this; the lookup is
// always parameterized regardless of mode, since only the deliberate
// multi-row surface (Find) demonstrates concatenation.
func (r *PGPairRepository) Get(ctx context.Context, origin, destination string) (*domain.Pair, error) {
	sess, err := r.db.Session(ctx)
	if err != nil {
		return nil, domain.Internalf("get pair: %v", err)
	}
	defer sess.Close()

	var p domain.Pair
	err = sess.QueryRow(ctx, selectPairStmt, origin, destination).
		Scan(&p.Origin, &p.Destination, &p.IsOneWay, &p.IsRoundtrip, &p.FareCarrier)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("pair not found")
	}
	if err != nil {
		return nil, domain.Internalf("get pair: %v", err)
	}
	return &p, nil
}

// Find collects every row the filter matches instead of stopping at the
// first. In concatenated mode a crafted filter that turns the WHERE
// clause into a tautology therefore returns the whole table.
func (r *PGPairRepository) Find(ctx context.Context, origin, destination string) ([]domain.Pair, error) {
	sess, err := r.db.Session(ctx)
	if err != nil {
		return nil, domain.Internalf("find pairs: %v", err)
	}
	defer sess.Close()

	var rows pgx.Rows
	if r.mode == ModeConcatenated {
		query := selectPairSQL(origin, destination)
		log.Debug().Str("query", query).Msg("executing concatenated lookup")
		rows, err = sess.Query(ctx, query)
	} else {
		rows, err = sess.QueryParams(ctx, selectPairStmt, origin, destination)
	}
	if err != nil {
		return nil, domain.Internalf("find pairs: %v", err)
	}
	defer rows.Close()

	return scanPairs(rows)
}

func (r *PGPairRepository) List(ctx context.Context) ([]domain.Pair, error) {
	sess, err := r.db.Session(ctx)
	if err != nil {
		return nil, domain.Internalf("list pairs: %v", err)
	}
	defer sess.Close()

	rows, err := sess.Query(ctx, selectPairsStmt)
	if err != nil {
		return nil, domain.Internalf("list pairs: %v", err)
	}
	defer rows.Close()

	return scanPairs(rows)
}

func scanPairs(rows pgx.Rows) ([]domain.Pair, error) {
	pairs := make([]domain.Pair, 0)
	for rows.Next() {
		var p domain.Pair
		if err := rows.Scan(&p.Origin, &p.Destination, &p.IsOneWay, &p.IsRoundtrip, &p.FareCarrier); err != nil {
			return nil, domain.Internalf("scan pair: %v", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internalf("read pairs: %v", err)
	}
	return pairs, nil
}

var _ PairRepository = (*PGPairRepository)(nil)
