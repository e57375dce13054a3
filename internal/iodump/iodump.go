// Package iodump reads Wikipedia pages-articles XML dumps. It detects the
// language of a dump and streams its pages, dropping pages that belong to
// ignored namespaces.
package iodump

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/dustin/go-wikiparse"
	"github.com/gnames/gnlib"
	"github.com/gnames/wikialias/internal/iofs"
	"github.com/gnames/wikialias/pkg/ent/wiki"
	"github.com/gnames/wikialias/pkg/namespace"
)

var langAttr = regexp.MustCompile(`xml:lang="([^"]*)"`)

// Dump is a pages-articles dump. It implements lifecycle.PageSource.
type Dump struct {
	path   string
	locale string
	filter *namespace.Filter

	read, skipped int
}

// Open reads the language declared on the first line of the dump and
// returns a Dump that ignores pages with titles starting with the given
// prefixes or with localized prefixes of the dump language.
func Open(path string, prefixes []string) (*Dump, error) {
	// the dump is read twice
	if path == iofs.Stdin {
		return nil, OpenError(path, errors.New("dump cannot be read from STDIN"))
	}
	locale, err := readLocale(path)
	if err != nil {
		return nil, err
	}
	res := &Dump{
		path:   path,
		locale: locale,
		filter: namespace.New(prefixes, locale),
	}
	return res, nil
}

func readLocale(path string) (string, error) {
	rc, err := iofs.Open(path)
	if err != nil {
		return "", OpenError(path, err)
	}
	defer rc.Close()

	line, err := bufio.NewReader(rc).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", OpenError(path, err)
	}
	m := langAttr.FindStringSubmatch(line)
	if m == nil || m[1] == "" {
		return "", LocaleError(path, line)
	}
	return m[1], nil
}

// Locale returns the language code of the dump, for example "ja".
func (d *Dump) Locale() string {
	return d.locale
}

// Filter returns the namespace filter used by the dump.
func (d *Dump) Filter() *namespace.Filter {
	return d.filter
}

// Pages opens the dump again and sends its pages to ch in dump order. The
// file is closed before Pages returns. Pages without a title, an ID or
// revisions are skipped, for pages with several revisions the last one is
// used. A page that breaks the XML stops reading with an error.
func (d *Dump) Pages(ctx context.Context, ch chan<- wiki.Page) error {
	d.read, d.skipped = 0, 0

	rc, err := iofs.Open(d.path)
	if err != nil {
		return OpenError(d.path, err)
	}
	defer rc.Close()

	p, err := wikiparse.NewParser(rc)
	if err != nil {
		return ReadError(d.path, 0, err)
	}

	for {
		page, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		// xml.Decoder errors are sticky, the stream cannot be resumed
		if err != nil {
			return ReadError(d.path, d.read, err)
		}
		d.read++

		if malformed(page) || d.filter.Ignored(page.Title) {
			d.skipped++
			continue
		}

		wp := wiki.Page{
			ID:     int(page.ID),
			Title:  page.Title,
			Markup: gnlib.FixUtf8(page.Revisions[len(page.Revisions)-1].Text),
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch <- wp:
		}
	}

	slog.Info("Dump is read",
		"path", d.path,
		"locale", d.locale,
		"pages", d.read,
		"skipped", d.skipped,
	)
	return nil
}

// malformed pages miss a title, an ID or a revision.
func malformed(page *wikiparse.Page) bool {
	return strings.TrimSpace(page.Title) == "" || page.ID == 0 ||
		len(page.Revisions) == 0
}

// Counts returns the number of pages read and skipped by the last call
// of Pages.
func (d *Dump) Counts() (read, skipped int) {
	return d.read, d.skipped
}
