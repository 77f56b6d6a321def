package ioimport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/pkg/errcode"
)

// ImportError is returned when an import run fails at some stage.
func ImportError(runID, stage string, err error) error {
	msg := "Import <em>%s</em> failed while %s"

	return &gn.Error{
		Code: errcode.DataImportError,
		Msg:  msg,
		Vars: []any{runID, stage},
		Err:  fmt.Errorf("import %s failed while %s: %w", runID, stage, err),
	}
}
