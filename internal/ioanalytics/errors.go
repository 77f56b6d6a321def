package ioanalytics

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/pkg/errcode"
)

// QueryExecutionError is returned when an analytical query fails.
func QueryExecutionError(query string, err error) error {
	msg := "Analytical query <em>%s</em> failed"

	return &gn.Error{
		Code: errcode.QueryExecutionError,
		Msg:  msg,
		Vars: []any{query},
		Err:  fmt.Errorf("analytical query %s failed: %w", query, err),
	}
}
