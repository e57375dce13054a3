// Package idtable extracts ID to title mappings from SQL-insert dumps of
// the Wikipedia page and redirect tables.
package idtable

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strconv"
)

// Table is a read-only lookup from a page ID to a title.
type Table interface {
	// Title returns the title stored for the ID.
	Title(id int) (string, bool)

	// Len returns the number of entries.
	Len() int
}

// Map is a Table kept in memory.
type Map map[int]string

// Title implements Table.
func (m Map) Title(id int) (string, bool) {
	res, ok := m[id]
	return res, ok
}

// Len implements Table.
func (m Map) Len() int {
	return len(m)
}

// tuple matches `(id,namespace,'title',...)` value literals. The first
// two columns of both page and redirect tables are the page ID and the
// namespace.
var tuple = regexp.MustCompile(`\((\d+),\d+,'?([^,']+)'?,[^\)]+\)`)

// Scan calls fn for every tuple of the dump in the order of appearance.
// Titles are returned in their raw form with underscores. Scanning stops
// at the first error returned by fn.
func Scan(r io.Reader, fn func(id int, title string) error) error {
	br := bufio.NewReaderSize(r, 1<<20)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if ferr := scanLine(line, fn); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func scanLine(line string, fn func(int, string) error) error {
	for _, m := range tuple.FindAllStringSubmatch(line, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			// overflowing IDs are not real pages
			continue
		}
		if err = fn(id, m[2]); err != nil {
			return err
		}
	}
	return nil
}

// Extract reads the whole dump into a Map. A later tuple with the same ID
// replaces an earlier one.
func Extract(r io.Reader) (Map, error) {
	res := make(Map)
	err := Scan(r, func(id int, title string) error {
		res[id] = title
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
