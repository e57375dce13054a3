// Package iotable loads page and redirect tables from SQL-insert dumps.
package iotable

import (
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
	"github.com/gnames/wikialias/internal/iofs"
	"github.com/gnames/wikialias/pkg/errcode"
	"github.com/gnames/wikialias/pkg/idtable"
)

// Load reads the whole table dump at path into memory. The file can be
// gzip or bzip2 compressed. Titles keep their raw form, invalid UTF-8 is
// repaired.
func Load(path string) (idtable.Map, error) {
	start := time.Now()

	rc, err := iofs.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer rc.Close()

	res, err := idtable.Extract(rc)
	if err != nil {
		return nil, ReadError(path, err)
	}

	// titles are binary columns, a dump can cut a multibyte character
	for id, title := range res {
		if !utf8.ValidString(title) {
			res[id] = gnlib.FixUtf8(title)
		}
	}

	slog.Info("Table is loaded",
		"path", path,
		"entries", res.Len(),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info("Loaded <em>%s</em> entries from %s",
		humanize.Comma(int64(res.Len())), path)
	return res, nil
}

// ReadError is returned when a table dump cannot be read.
func ReadError(path string, err error) error {
	msg := `Cannot read table dump <em>%s</em>

<em>Possible causes:</em>
  - File does not exist
  - File is truncated or is not a gzip/bzip2 archive`

	return &gn.Error{
		Code: errcode.TableReadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read table %s: %w", path, err),
	}
}
