// Package dbfile formats normalization records of canonical pages and
// reads the page lists they are generated from.
package dbfile

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/gnames/wikialias/pkg/aliasdict"
)

// Entry is a page that might become a record.
type Entry struct {
	ID    int
	Title string
}

// Format returns one record line without the trailing newline.
//
//	ID<TAB>name:Name:TITLE<TAB>attr:WikipageID:ID[<TAB>name:Alias:ALIAS...]
func Format(e Entry, aliases []string) string {
	id := strconv.Itoa(e.ID)
	var sb strings.Builder
	sb.WriteString(id)
	sb.WriteString("\tname:Name:")
	sb.WriteString(e.Title)
	sb.WriteString("\tattr:WikipageID:")
	sb.WriteString(id)
	for _, v := range aliases {
		sb.WriteString("\tname:Alias:")
		sb.WriteString(v)
	}
	return sb.String()
}

// Stats counts what an Emitter did.
type Stats struct {
	// Records is the number of written lines.
	Records int

	// WithAliases is the number of written lines that have aliases.
	WithAliases int

	// Skipped is the number of redirect and disambiguation pages.
	Skipped int
}

// Emitter writes records for canonical pages.
type Emitter struct {
	dict  *aliasdict.Dictionary
	w     *bufio.Writer
	stats Stats
}

// NewEmitter creates an Emitter writing to w. Call Flush when done.
func NewEmitter(w io.Writer, dict *aliasdict.Dictionary) *Emitter {
	return &Emitter{dict: dict, w: bufio.NewWriter(w)}
}

// Add writes a record for the entry unless its ID belongs to a redirect or
// disambiguation page. It returns false for skipped entries.
func (e *Emitter) Add(entry Entry) (bool, error) {
	if !e.dict.IsCanonical(entry.ID) {
		e.stats.Skipped++
		return false, nil
	}
	aliases := e.dict.Aliases(entry.Title)
	if _, err := e.w.WriteString(Format(entry, aliases)); err != nil {
		return false, err
	}
	if err := e.w.WriteByte('\n'); err != nil {
		return false, err
	}
	e.stats.Records++
	if len(aliases) > 0 {
		e.stats.WithAliases++
	}
	return true, nil
}

// Flush writes buffered records to the underlying writer.
func (e *Emitter) Flush() error {
	return e.w.Flush()
}

// Stats returns counters collected so far.
func (e *Emitter) Stats() Stats {
	return e.stats
}
