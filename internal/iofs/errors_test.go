package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_Structure(t *testing.T) {
	orig := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		path string
	}{
		{"create dir", CreateDirError("/test/dir", orig),
			errcode.CreateDirError, "/test/dir"},
		{"copy file", CopyFileError("/test/config.yaml", orig),
			errcode.CopyFileError, "/test/config.yaml"},
		{"read file", ReadFileError("/test/data.json", orig),
			errcode.ReadFileError, "/test/data.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")

			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])
			assert.ErrorIs(t, gnErr.Err, orig)
			assert.Contains(t, gnErr.Err.Error(), tt.path)
		})
	}
}
