// Package wiki contains entities shared by the dump reading, extraction
// and aggregation stages.
package wiki

// Page is one entry of a Wikipedia dump.
type Page struct {
	// Title of the page as it appears in the dump.
	Title string

	// Markup is the raw wiki markup of the latest revision.
	Markup string

	// ID is the numeric page ID.
	ID int
}

// Wikilink is an internal link with explicit display text.
// Both fields are normalized by the time a Wikilink leaves the extractor.
type Wikilink struct {
	// Anchor is the display text, normalized as an alias.
	Anchor string

	// Target is the linked page title, normalized as a title.
	Target string
}

// Extraction is the result of processing the markup of one page.
// Wikilinks and Members never contain duplicates.
type Extraction struct {
	// Wikilinks found in the page.
	Wikilinks []Wikilink

	// Members are titles listed by a disambiguation page. It is empty
	// for all other pages.
	Members []string

	// IsDisambiguation is true if the page carries a disambiguation marker.
	IsDisambiguation bool

	// Degraded is true if the markup could not be parsed and the
	// extraction is empty because of it.
	Degraded bool
}

// Result is what extraction workers send to the aggregator. The markup of
// the page is not kept.
type Result struct {
	ID         int
	Title      string
	Extraction Extraction
}
