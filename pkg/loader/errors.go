package loader

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/pkg/errcode"
)

// UnsupportedFormatError is returned when no loader serves the format.
func UnsupportedFormatError(format string, supported []string) error {
	list := strings.Join(supported, ", ")
	msg := "Format <em>%s</em> is not supported, use one of: %s"
	vars := []any{format, list}
	return &gn.Error{
		Code: errcode.UnsupportedFormatError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"unsupported format %q, supported formats: %s", format, list,
		),
	}
}

// ValidationError is returned when a record violates the domain rules.
func ValidationError(
	entity string,
	index int,
	field string,
	value any,
	reason string,
) error {
	msg := "Invalid %s record #%d: field <em>%s</em> %s"
	vars := []any{entity, index, field, reason}
	return &gn.Error{
		Code: errcode.ValidationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"invalid %s record %d: field %q (%v) %s",
			entity, index, field, value, reason,
		),
	}
}
