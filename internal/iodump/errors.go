package iodump

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/wikialias/pkg/errcode"
)

// OpenError is returned when a dump file cannot be opened.
func OpenError(path string, err error) error {
	msg := `Cannot open dump <em>%s</em>

<em>How to fix:</em>
  1. Check that the file exists and is readable
  2. Check that the file is not truncated`

	return &gn.Error{
		Code: errcode.DumpOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open dump %s: %w", path, err),
	}
}

// LocaleError is returned when the first line of a dump does not declare
// its language.
func LocaleError(path, line string) error {
	msg := `Cannot find language of dump <em>%s</em>

The first line of a pages-articles dump must carry an
<em>xml:lang="..."</em> attribute.`

	if len(line) > 200 {
		line = line[:200]
	}
	return &gn.Error{
		Code: errcode.DumpLocaleError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("no xml:lang attribute in %q", line),
	}
}

// ReadError is returned when a dump breaks in the middle of reading.
func ReadError(path string, pages int, err error) error {
	msg := "Cannot read dump <em>%s</em> after %d pages"

	return &gn.Error{
		Code: errcode.DumpReadError,
		Msg:  msg,
		Vars: []any{path, pages},
		Err:  fmt.Errorf("cannot read dump %s: %w", path, err),
	}
}
