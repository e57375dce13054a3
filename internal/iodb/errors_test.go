package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/wikialias/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "test", "postgres",
		originalErr)
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 5)
	assert.Equal(t, "test", gnErr.Vars[2])
	assert.ErrorIs(t, gnErr.Err, originalErr)
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

// TestTruncateError_Structure verifies error structure.
func TestTruncateError_Structure(t *testing.T) {
	originalErr := errors.New("permission denied")

	err := TruncateError([]string{"aliases", "aimai"}, originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.DBTruncateError, gnErr.Code)
	assert.Equal(t, []any{"aliases, aimai"}, gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestAllErrors_ErrorWrapping verifies proper error
// wrapping.
func TestAllErrors_ErrorWrapping(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name  string
		error error
		code  gn.ErrorCode
	}{
		{
			name: "ConnectionError",
			error: ConnectionError("host", 5432, "db", "user",
				originalErr),
			code: errcode.DBConnectionError,
		},
		{
			name:  "TableCheckError",
			error: TableCheckError(originalErr),
			code:  errcode.DBTableCheckError,
		},
		{
			name:  "TableExistsCheckError",
			error: TableExistsCheckError("table", originalErr),
			code:  errcode.DBTableExistsCheckError,
		},
		{
			name:  "TruncateError",
			error: TruncateError([]string{"table"}, originalErr),
			code:  errcode.DBTruncateError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr := tt.error.(*gn.Error)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.ErrorIs(t, gnErr.Err, originalErr,
				"Should wrap original error")
		})
	}
}
