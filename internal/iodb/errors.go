package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/pkg/errcode"
)

// ConnectionError is returned when a connection to PostgreSQL
// cannot be opened or borrowed from the pool.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - All pooled connections are busy

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify database <em>%s</em> exists
  3. Check credentials of user <em>%s</em> in
     <em>~/.config/roomdb/config.yaml</em>`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{host, port, database, user},
		Err: fmt.Errorf(
			"failed to connect to %s:%d/%s as %s: %w",
			host, port, database, user, err,
		),
	}
}

// NotConnectedError is returned when the pool is used before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted before connection settings were given"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("database operator is not connected"),
	}
}

// TableExistsCheckError is returned when table lookup fails.
func TableExistsCheckError(tableName string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: []any{tableName},
		Err:  fmt.Errorf("failed to check table %s: %w", tableName, err),
	}
}

// TransactionError is returned when a unit of work could not be
// committed. The stage is one of 'begin', 'work' or 'commit'.
func TransactionError(stage string, err error) error {
	msg := "Transaction failed at <em>%s</em> stage, changes rolled back"

	return &gn.Error{
		Code: errcode.TransactionError,
		Msg:  msg,
		Vars: []any{stage},
		Err:  fmt.Errorf("transaction %s failed: %w", stage, err),
	}
}
