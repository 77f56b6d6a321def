package errcode

import (
	"errors"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	TransactionError

	// Schema errors
	SchemaDatabaseError
	SchemaCreateError
	SchemaDropError
	SchemaIndexError

	// Repository errors
	QueryExecutionError
	ValidationError

	// Loader and import errors
	UnsupportedFormatError
	DataImportError
)

// Of returns the code of the outermost *gn.Error found in the chain of err.
// UnknownError is returned for nil and for errors without a code.
func Of(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return UnknownError
}
