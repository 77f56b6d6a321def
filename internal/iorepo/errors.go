package iorepo

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/pkg/errcode"
)

// QueryExecutionError is returned when a repository statement fails.
func QueryExecutionError(query string, err error) error {
	msg := "Query <em>%s</em> failed"

	return &gn.Error{
		Code: errcode.QueryExecutionError,
		Msg:  msg,
		Vars: []any{query},
		Err:  fmt.Errorf("query %s failed: %w", query, err),
	}
}
