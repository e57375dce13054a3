package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/wikialias/pkg/errcode"
)

// CreateDirError is returned when a config, cache or log directory
// cannot be created.
func CreateDirError(dir string, err error) error {
	msg := "Cannot create directory <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: cannot create directory: %w", fn.Name(), err),
	}
}

// ConfigFileError is returned when the default config.yaml cannot be
// generated or written.
func ConfigFileError(path string, err error) error {
	msg := `Cannot write default configuration to <em>%s</em>

Set WIKIALIAS_* environment variables or create the file manually.`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot write config: %w", fn.Name(), err),
	}
}

// ReadFileError is returned when an input or config file cannot be opened
// or its compression is broken.
func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}
