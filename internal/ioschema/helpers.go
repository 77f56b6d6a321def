package ioschema

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes of PostgreSQL errors that mean the object is already
// there.
const (
	duplicateDatabase = "42P04"
	duplicateTable    = "42P07"
	duplicateObject   = "42710"
)

// pgCode returns SQLSTATE of a PostgreSQL error or an empty string.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isAlreadyExists is true for errors about a relation or an object
// that exists already. Indexes are relations, so a duplicate index
// reports duplicate_table.
func isAlreadyExists(err error) bool {
	switch pgCode(err) {
	case duplicateTable, duplicateObject:
		return true
	}
	return false
}
