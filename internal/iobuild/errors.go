package iobuild

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/wikialias/pkg/errcode"
)

// CancelledError is returned when a build is interrupted before the dump
// is fully processed. Nothing is persisted in this case.
func CancelledError(pages int, err error) error {
	msg := `Build was cancelled after <em>%d</em> pages

Nothing was saved, run the build again to create the dictionary.`

	return &gn.Error{
		Code: errcode.BuildCancelledError,
		Msg:  msg,
		Vars: []any{pages},
		Err:  fmt.Errorf("build cancelled after %d pages: %w", pages, err),
	}
}

// NoPagesError is returned when the dump gave no pages to process.
func NoPagesError(locale string) error {
	msg := `Dump (locale <em>%s</em>) contains no pages outside of ignored namespaces

<em>Possible causes:</em>
  - Wrong file was given as a pages-articles dump
  - Ignored namespaces cover every page of the dump`

	return &gn.Error{
		Code: errcode.BuildNoPagesError,
		Msg:  msg,
		Vars: []any{locale},
		Err:  fmt.Errorf("no pages in dump with locale %s", locale),
	}
}
