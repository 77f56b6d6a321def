package errcode_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	gnErr := &gn.Error{
		Code: errcode.ValidationError,
		Msg:  "bad record",
		Err:  errors.New("bad record"),
	}

	tests := []struct {
		msg string
		err error
		res gn.ErrorCode
	}{
		{"nil", nil, errcode.UnknownError},
		{"plain", errors.New("plain"), errcode.UnknownError},
		{"gn error", gnErr, errcode.ValidationError},
		{"wrapped", fmt.Errorf("outer: %w", gnErr), errcode.ValidationError},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, errcode.Of(v.err), v.msg)
	}
}
