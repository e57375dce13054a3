// Package lifecycle defines the stages of building and using an alias
// dictionary. Implementations live in internal/io* packages.
package lifecycle

import (
	"context"

	"github.com/gnames/wikialias/pkg/aliasdict"
	"github.com/gnames/wikialias/pkg/dbfile"
	"github.com/gnames/wikialias/pkg/ent/wiki"
	"github.com/gnames/wikialias/pkg/idtable"
)

// PageSource produces pages of a dump.
type PageSource interface {
	// Locale returns the language code declared by the dump.
	Locale() string

	// Pages sends all pages that are not in ignored namespaces to ch and
	// returns when the dump is exhausted or ctx is cancelled. It does not
	// close ch.
	Pages(ctx context.Context, ch chan<- wiki.Page) error
}

// Builder creates an alias dictionary from a page source and the page and
// redirect tables. Both tables must be fully loaded.
type Builder interface {
	Build(
		ctx context.Context,
		src PageSource,
		pages, redirects idtable.Table,
	) (*aliasdict.Dictionary, aliasdict.Stats, error)
}

// Store persists a dictionary and loads it back.
type Store interface {
	// Save replaces the stored dictionary.
	Save(ctx context.Context, dict *aliasdict.Dictionary) error

	// Load returns the stored dictionary.
	Load(ctx context.Context) (*aliasdict.Dictionary, error)
}

// Emitter writes normalization records of canonical pages.
type Emitter interface {
	Emit(
		ctx context.Context,
		dict *aliasdict.Dictionary,
	) (dbfile.Stats, error)
}

// SchemaManager creates or updates the PostgreSQL tables of the
// dictionary. It is idempotent.
type SchemaManager interface {
	Migrate(ctx context.Context) error
}
