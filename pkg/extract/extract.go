// Package extract finds wikilinks and disambiguation members in the markup
// of a single page.
package extract

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/gnames/wikialias/pkg/ent/wiki"
	"github.com/gnames/wikialias/pkg/namespace"
	"github.com/gnames/wikialias/pkg/normalize"
	"github.com/gnames/wikialias/pkg/wikitext"
)

// memberLine matches a list item that starts with a link, the way
// disambiguation pages enumerate their entries.
var memberLine = regexp.MustCompile(`(?m)^[*+]+[ \t]\[\[([^|\]\n]+)[|\]]`)

// Extractor is stateless after creation and can be shared by many
// goroutines.
type Extractor struct {
	filter  *namespace.Filter
	markers map[string]struct{}
}

// New creates an Extractor. Link targets and members in ignored
// namespaces are dropped. Markers are template names (case-insensitive)
// that make a page a disambiguation page.
func New(filter *namespace.Filter, markers []string) *Extractor {
	res := &Extractor{
		filter:  filter,
		markers: make(map[string]struct{}, len(markers)),
	}
	for _, v := range markers {
		res.markers[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return res
}

// Extract returns the wikilinks with explicit display text found in the
// markup, whether the page is a disambiguation page, and, if it is, its
// member titles. Markup that cannot be parsed gives an empty extraction
// marked as degraded. Extract never panics.
func (e *Extractor) Extract(markup string) (res wiki.Extraction) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Recovered from panic during extraction", "panic", r)
			res = wiki.Extraction{Degraded: true}
		}
	}()

	nodes, err := wikitext.Parse(markup)
	if err != nil {
		slog.Debug("Cannot parse markup", "error", err)
		return wiki.Extraction{Degraded: true}
	}

	seen := make(map[wiki.Wikilink]struct{})
	wikitext.Walk(nodes, func(n wikitext.Node) bool {
		switch n.Kind() {
		case wikitext.KindTemplate:
			if _, ok := e.markers[n.(*wikitext.Template).NameText()]; ok {
				res.IsDisambiguation = true
			}
		case wikitext.KindLink:
			wl, ok := e.wikilink(n.(*wikitext.Link))
			if !ok {
				break
			}
			if _, ok := seen[wl]; ok {
				break
			}
			seen[wl] = struct{}{}
			res.Wikilinks = append(res.Wikilinks, wl)
		}
		return true
	})

	if res.IsDisambiguation {
		res.Members = e.members(markup)
	}
	return res
}

func (e *Extractor) wikilink(l *wikitext.Link) (wiki.Wikilink, bool) {
	var res wiki.Wikilink
	display, ok := l.Display()
	if !ok || isBlank(display) {
		return res, false
	}
	target := l.Target()
	if target == "" || e.filter.Ignored(target) {
		return res, false
	}
	target = strings.TrimSpace(strings.TrimPrefix(target, ":"))
	if target == "" {
		return res, false
	}

	res.Target = normalize.Title(target)
	res.Anchor = normalize.Alias(display)
	if isBlank(res.Anchor) {
		return res, false
	}
	return res, true
}

func (e *Extractor) members(markup string) []string {
	var res []string
	seen := make(map[string]struct{})
	for _, m := range memberLine.FindAllStringSubmatch(markup, -1) {
		title := normalize.Title(strings.TrimSpace(m[1]))
		if title == "" || e.filter.Ignored(title) {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		res = append(res, title)
	}
	return res
}

// isBlank is true for strings that contain only Unicode white space,
// including the ideographic space U+3000.
func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
