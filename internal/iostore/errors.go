package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/wikialias/pkg/errcode"
)

// FormatError is returned for an unknown store format.
func FormatError(format string) error {
	msg := `Unknown dictionary format <em>%s</em>

Supported formats: gob, json, sqlite, postgres`

	return &gn.Error{
		Code: errcode.StoreFormatError,
		Msg:  msg,
		Vars: []any{format},
		Err:  fmt.Errorf("unknown store format %q", format),
	}
}

// SaveError is returned when a dictionary cannot be saved. Location is a
// file path or a database name.
func SaveError(location string, err error) error {
	msg := `Cannot save alias dictionary to <em>%s</em>`

	return &gn.Error{
		Code: errcode.StoreSaveError,
		Msg:  msg,
		Vars: []any{location},
		Err:  fmt.Errorf("cannot save dictionary to %s: %w", location, err),
	}
}

// LoadError is returned when a stored dictionary cannot be read.
func LoadError(location string, err error) error {
	msg := `Cannot load alias dictionary from <em>%s</em>

<em>Possible causes:</em>
  - Dictionary was not built yet
  - Dictionary was saved in a different format`

	return &gn.Error{
		Code: errcode.StoreLoadError,
		Msg:  msg,
		Vars: []any{location},
		Err:  fmt.Errorf("cannot load dictionary from %s: %w", location, err),
	}
}
