package aliasdict

import (
	"log/slog"

	"github.com/gnames/wikialias/pkg/ent/wiki"
	"github.com/gnames/wikialias/pkg/idtable"
	"github.com/gnames/wikialias/pkg/normalize"
)

// Stats summarizes what a build folded into the dictionary.
type Stats struct {
	// Pages is the number of folded results.
	Pages int

	// Wikilinks is the number of folded wikilinks.
	Wikilinks int

	// Redirects is the number of pages resolved as redirects.
	Redirects int

	// Aimai is the number of disambiguation pages.
	Aimai int

	// Members is the number of folded disambiguation members.
	Members int

	// LookupMisses counts redirect pages absent from the page table.
	LookupMisses int

	// Degraded counts pages with markup that could not be parsed.
	Degraded int
}

// Aggregator folds extraction results into a Dictionary. It is not safe
// for concurrent use; a single goroutine has to own it.
type Aggregator struct {
	dict      *Dictionary
	pages     idtable.Table
	redirects idtable.Table
	stats     Stats
}

// NewAggregator creates an Aggregator over fully loaded page and redirect
// tables. Either table can be nil, which disables redirect resolution.
func NewAggregator(pages, redirects idtable.Table) *Aggregator {
	return &Aggregator{
		dict:      New(),
		pages:     pages,
		redirects: redirects,
	}
}

// Fold merges one result into the dictionary.
func (a *Aggregator) Fold(res wiki.Result) {
	a.stats.Pages++
	ext := res.Extraction
	if ext.Degraded {
		a.stats.Degraded++
	}

	for _, v := range ext.Wikilinks {
		a.dict.AddAlias(v.Target, v.Anchor)
	}
	a.stats.Wikilinks += len(ext.Wikilinks)

	a.foldRedirect(res.ID)

	if ext.IsDisambiguation {
		a.stats.Aimai++
		a.dict.AddAimai(res.ID, "")
		alias := normalize.Alias(res.Title)
		for _, m := range ext.Members {
			a.dict.AddAlias(m, alias)
			a.dict.AddAimai(res.ID, m)
		}
		a.stats.Members += len(ext.Members)
	}
}

func (a *Aggregator) foldRedirect(id int) {
	if a.redirects == nil || a.pages == nil {
		return
	}
	target, ok := a.redirects.Title(id)
	if !ok {
		return
	}
	title, ok := a.pages.Title(id)
	if !ok {
		a.stats.LookupMisses++
		slog.Debug("Redirect page is missing from page table", "id", id)
		return
	}
	a.stats.Redirects++
	a.dict.AddAlias(normalize.Title(target), normalize.Alias(title))
	a.dict.AddRedirect(id, normalize.Title(title))
}

// Dictionary returns the dictionary built so far.
func (a *Aggregator) Dictionary() *Dictionary {
	return a.dict
}

// Stats returns the counters collected so far.
func (a *Aggregator) Stats() Stats {
	return a.stats
}
