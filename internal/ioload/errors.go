package ioload

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/pkg/errcode"
)

// DataImportError is returned when a file cannot be read or decoded.
func DataImportError(path string, err error) error {
	msg := "Cannot import data from <em>%s</em>"

	return &gn.Error{
		Code: errcode.DataImportError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot import data from %s: %w", path, err),
	}
}

// StructureError is returned when a file does not hold a list of records
// with required fields.
func StructureError(path, entity, reason string) error {
	msg := "File <em>%s</em> has no valid %s records: %s"

	return &gn.Error{
		Code: errcode.ValidationError,
		Msg:  msg,
		Vars: []any{path, entity, reason},
		Err:  fmt.Errorf("file %s has no valid %s records: %s", path, entity, reason),
	}
}
