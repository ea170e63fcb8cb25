package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mkolev/routecatalog/internal/domain"
)

const (
	insertUserStmt = `INSERT INTO users (name, password, type_id) VALUES ($1, $2, $3)`
	insertPairStmt = `INSERT INTO pairs (origin, destination, is_one_way, is_roundtrip, f_carrier) VALUES ($1, $2, $3, $4, $5)`

	selectUsersStmt = `SELECT name, password, type_id FROM users ORDER BY name`
	selectPairsStmt = `SELECT origin, destination, is_one_way, is_roundtrip, f_carrier FROM pairs ORDER BY origin, destination`
	selectPairStmt  = `SELECT origin, destination, is_one_way, is_roundtrip, f_carrier FROM pairs WHERE origin=$1 AND destination=$2`

	missingPairIDsStmt = `SELECT p.id FROM pairs p LEFT JOIN flights f ON f.pair_id = p.id WHERE f.id IS NULL`
	insertFlightStmt   = `INSERT INTO flights (pair_id, dep_datetime, arr_datetime, price, currency, cabin) VALUES ($1, $2, $3, $4, $5, $6)`

	flightsBaseStmt = `SELECT p.origin, p.destination, p.is_roundtrip, p.f_carrier, ` +
		`f.dep_datetime, f.arr_datetime, f.price, f.currency, f.cabin ` +
		`FROM flights f JOIN pairs p ON f.pair_id = p.id`
)

// insertUserSQL builds the INSERT by splicing the record fields straight
// into the statement text. Any field is an injection vector.
func insertUserSQL(u domain.User) string {
	return fmt.Sprintf("INSERT INTO users (name, password, type_id) VALUES ('%s', '%s', %d)",
		u.Username, u.Password, int(u.Type))
}

func insertPairSQL(p domain.Pair) string {
	return fmt.Sprintf("INSERT INTO pairs (origin, destination, is_one_way, is_roundtrip, f_carrier) VALUES ('%s', '%s', %s, %s, '%s')",
		p.Origin, p.Destination, strconv.FormatBool(p.IsOneWay), strconv.FormatBool(p.IsRoundtrip), p.FareCarrier)
}

func selectPairSQL(origin, destination string) string {
	return "SELECT origin, destination, is_one_way, is_roundtrip, f_carrier FROM pairs WHERE origin='" +
		origin + "' AND destination='" + destination + "'"
}

// flightsQuery appends the origin and destination clauses conditionally:
// either one alone, both joined by AND, or neither (full scan). In
// parameterized mode the filters become positional bindings; in
// concatenated mode they are spliced as quoted literals.
func flightsQuery(mode QueryMode, origin, destination string) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if origin != "" {
		if mode == ModeParameterized {
			args = append(args, origin)
			clauses = append(clauses, fmt.Sprintf("p.origin=$%d", len(args)))
		} else {
			clauses = append(clauses, "p.origin='"+origin+"'")
		}
	}
	if destination != "" {
		if mode == ModeParameterized {
			args = append(args, destination)
			clauses = append(clauses, fmt.Sprintf("p.destination=$%d", len(args)))
		} else {
			clauses = append(clauses, "p.destination='"+destination+"'")
		}
	}

	query := flightsBaseStmt
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	return query, args
}
