package repository

import (
	"context"
	"math/rand"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/mkolev/routecatalog/internal/domain"
	"github.com/mkolev/routecatalog/internal/store"
)

// Placeholder schedule and fare bounds used for generated flights.
const (
	generatedDeparture = "2021-01-01 00:00:00"
	generatedArrival   = "2021-01-01 12:00:00"
	generatedCurrency  = "USD"
	minPrice           = 100.0
	maxPrice           = 1000.0
)

type FlightRepository interface {
	GenerateForAllPairs(ctx context.Context) (int, error)
	Get(ctx context.Context, origin, destination string) ([]domain.Flight, error)
}

type PGFlightRepository struct {
	db   *store.DB
	mode QueryMode
}

func NewFlightRepository(db *store.DB, mode QueryMode) FlightRepository {
	return &PGFlightRepository{db: db, mode: mode}
}

// GenerateForAllPairs synthesizes one flight for every pair that has none
// yet, with a uniformly random price in [100, 1000] and cabin class. The
// missing set is recomputed against the store on every call, so repeat
// invocations are no-ops for already-populated pairs.
func (r *PGFlightRepository) GenerateForAllPairs(ctx context.Context) (int, error) {
	sess, err := r.db.Session(ctx)
	if err != nil {
		return 0, domain.Internalf("generate flights: %v", err)
	}
	defer sess.Close()

	rows, err := sess.Query(ctx, missingPairIDsStmt)
	if err != nil {
		return 0, domain.Internalf("generate flights: %v", err)
	}

	var pairIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, domain.Internalf("scan pair id: %v", err)
		}
		pairIDs = append(pairIDs, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, domain.Internalf("generate flights: %v", err)
	}
	rows.Close()

	for _, id := range pairIDs {
		price, cabin := randomFlightValues()

		_, err := sess.Exec(ctx, insertFlightStmt,
			id, generatedDeparture, generatedArrival, price, generatedCurrency, cabin)
		if err != nil {
			return 0, domain.Internalf("insert flight: %v", err)
		}
	}
	return len(pairIDs), nil
}

// randomFlightValues draws a uniform price in [minPrice, maxPrice] and a
// cabin class ordinal for a generated flight.
func randomFlightValues() (price float64, cabin int) {
	price = minPrice + rand.Float64()*(maxPrice-minPrice)
	cabin = rand.Intn(int(domain.CabinFirst) + 1)
	return price, cabin
}

// Get joins flights with their pairs, filtering by origin and/or
// destination when given. Either filter, both, or neither is supported.
func (r *PGFlightRepository) Get(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	sess, err := r.db.Session(ctx)
	if err != nil {
		return nil, domain.Internalf("get flights: %v", err)
	}
	defer sess.Close()

	query, args := flightsQuery(r.mode, origin, destination)

	var rows pgx.Rows
	if r.mode == ModeConcatenated {
		log.Debug().Str("query", query).Msg("executing concatenated lookup")
		rows, err = sess.Query(ctx, query)
	} else {
		rows, err = sess.QueryParams(ctx, query, args...)
	}
	if err != nil {
		return nil, domain.Internalf("get flights: %v", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var (
			f           domain.Flight
			isRoundtrip bool
			cabin       int
		)
		if err := rows.Scan(&f.Origin, &f.Destination, &isRoundtrip, &f.FareCarrier,
			&f.DepartureTime, &f.ArrivalTime, &f.Price, &f.Currency, &cabin); err != nil {
			return nil, domain.Internalf("scan flight: %v", err)
		}
		if isRoundtrip {
			f.Type = domain.FlightRoundtrip
		}
		f.Cabin = domain.Cabin(cabin)
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internalf("get flights: %v", err)
	}
	return flights, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
