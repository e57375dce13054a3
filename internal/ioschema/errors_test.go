package ioschema

import (
	"errors"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/wikialias/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors verifies codes, message variables and wrapping of the
// schema errors.
func TestErrors(t *testing.T) {
	cause := errors.New("permission denied for schema public")

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		vars []any
	}{
		{"gorm", GORMConnectionError(cause),
			errcode.SchemaGORMConnectionError, nil},
		{"migrate", MigrateSchemaError(cause),
			errcode.SchemaMigrateError, nil},
		{"collation", CollationError("aliases", "alias", cause),
			errcode.SchemaCollationError, []any{"aliases", "alias"}},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.Equal(t, v.vars, gnErr.Vars, v.msg)
		assert.Equal(t, len(v.vars), strings.Count(gnErr.Msg, "%s"), v.msg)
		assert.ErrorIs(t, gnErr.Err, cause, v.msg)
	}
}
