package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/wikialias/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileErrors runs the file system operations into failures and checks
// the resulting errors.
func TestFileErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0644))
	missing := filepath.Join(dir, "missing.sql.gz")

	tests := []struct {
		msg  string
		run  func() error
		code gn.ErrorCode
		path string
	}{
		{
			msg:  "directory under a file",
			run:  func() error { return touchDir(filepath.Join(blocker, "logs")) },
			code: errcode.CreateDirError,
			path: filepath.Join(blocker, "logs"),
		},
		{
			msg: "config without config dir",
			run: func() error { return EnsureConfigFile(blocker) },
			// ~/.config/wikialias under a regular file cannot exist
			code: errcode.WriteFileError,
			path: filepath.Join(blocker, ".config", "wikialias", "config.yaml"),
		},
		{
			msg:  "missing input",
			run:  func() error { _, err := Open(missing); return err },
			code: errcode.ReadFileError,
			path: missing,
		},
	}

	for _, v := range tests {
		err := v.run()
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.Equal(t, []any{v.path}, gnErr.Vars, v.msg)
		assert.Contains(t, gnErr.Msg, "<em>%s</em>", v.msg)
		assert.Contains(t, gnErr.Err.Error(), "iofs.", v.msg)
	}
}
