package dbfile

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strconv"

	"github.com/gnames/wikialias/pkg/idtable"
	"github.com/gnames/wikialias/pkg/normalize"
)

// ScanPageSQL calls fn for every page of a page table SQL dump. Titles are
// normalized.
func ScanPageSQL(r io.Reader, fn func(Entry) error) error {
	return idtable.Scan(r, func(id int, title string) error {
		return fn(Entry{ID: id, Title: normalize.Title(title)})
	})
}

// pageIDTriple matches the wikiPageID triples of DBpedia page-ids.ttl
// files of any language edition.
var pageIDTriple = regexp.MustCompile(
	`<http://(?:[a-z\-]+\.)?dbpedia\.org/resource/(.+?)>\s+` +
		`<http://dbpedia\.org/ontology/wikiPageID>\s+"(.+?)"\^\^`)

// ScanDBpediaTTL calls fn for every wikiPageID triple of a DBpedia
// page-ids.ttl stream. Other lines are ignored. Titles are normalized.
func ScanDBpediaTTL(r io.Reader, fn func(Entry) error) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if m := pageIDTriple.FindStringSubmatch(line); m != nil {
			if id, cerr := strconv.Atoi(m[2]); cerr == nil {
				ferr := fn(Entry{ID: id, Title: normalize.Title(m[1])})
				if ferr != nil {
					return ferr
				}
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
