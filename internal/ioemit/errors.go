package ioemit

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/wikialias/pkg/errcode"
)

// SourceError is returned when the page list cannot be read or its
// kind is unknown.
func SourceError(source, path string, err error) error {
	msg := `Cannot read <em>%s</em> page list from <em>%s</em>

<em>Supported page lists:</em>
  - page-sql: page table SQL dump (*.sql, *.sql.gz)
  - dbpedia-ttl: DBpedia page-ids.ttl (*.ttl, *.ttl.bz2, - for STDIN)`

	return &gn.Error{
		Code: errcode.EmitSourceError,
		Msg:  msg,
		Vars: []any{source, path},
		Err:  fmt.Errorf("cannot read %s from %s: %w", source, path, err),
	}
}

// WriteError is returned when records cannot be written.
func WriteError(path string, err error) error {
	msg := `Cannot write records to <em>%s</em>`

	return &gn.Error{
		Code: errcode.EmitWriteError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write records to %s: %w", path, err),
	}
}
