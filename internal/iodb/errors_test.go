package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	host := "localhost"
	port := 5432
	database := "test"
	user := "postgres"
	originalErr := errors.New("connection refused")

	err := ConnectionError(host, port, database, user,
		originalErr)

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 4,
		"Should have 4 vars: host, port, database, user")
	assert.ErrorIs(t, gnErr.Err, originalErr)
	assert.Contains(t, gnErr.Err.Error(), "localhost:5432/test")
}

// TestNotConnectedError_Structure verifies error structure.
func TestNotConnectedError_Structure(t *testing.T) {
	err := NotConnectedError()

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

// TestTableExistsCheckError_Structure verifies error structure.
func TestTableExistsCheckError_Structure(t *testing.T) {
	originalErr := errors.New("query failed")

	err := TableExistsCheckError("rooms", originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBTableExistsCheckError, gnErr.Code)
	assert.Equal(t, []any{"rooms"}, gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestTransactionError_Structure verifies error structure.
func TestTransactionError_Structure(t *testing.T) {
	originalErr := errors.New("duplicate key")

	err := TransactionError("work", originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.TransactionError, gnErr.Code)
	assert.Equal(t, []any{"work"}, gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}
