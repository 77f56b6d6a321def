package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// DatabaseError creates an error for failures to check or
// create the database itself.
func DatabaseError(database string, err error) error {
	msg := `Cannot create database <em>%s</em>

<em>Possible causes:</em>
  - PostgreSQL is not running
  - User has no CREATEDB privilege
  - Maintenance database 'postgres' is not accessible

<em>How to fix:</em>
  1. Check connection settings
  2. Create the database manually with <em>createdb</em>`

	return &gn.Error{
		Code: errcode.SchemaDatabaseError,
		Msg:  msg,
		Vars: []any{database},
		Err:  fmt.Errorf("failed to create database %s: %w", database, err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create database schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Existing tables with incompatible structure

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Drop old tables with <em>roomdb drop</em>
  3. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// DropSchemaError creates an error for failures to remove
// tables.
func DropSchemaError(err error) error {
	msg := "Cannot drop database tables"

	return &gn.Error{
		Code: errcode.SchemaDropError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to drop schema: %w", err),
	}
}

// IndexError describes a failure to build an index. It is logged,
// not returned, by CreateIndexes.
func IndexError(index string, err error) error {
	msg := "Cannot create index <em>%s</em>"

	return &gn.Error{
		Code: errcode.SchemaIndexError,
		Msg:  msg,
		Vars: []any{index},
		Err:  fmt.Errorf("failed to create index %s: %w", index, err),
	}
}
