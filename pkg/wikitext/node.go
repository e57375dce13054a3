// Package wikitext parses MediaWiki markup into a small tree of tagged
// nodes. It understands only the constructs needed to find internal links
// and template transclusions: links, templates, comments and a handful of
// HTML-like tags. Everything else is kept as text.
package wikitext

import (
	"regexp"
	"strings"
)

// Kind is the tag of a node variant.
type Kind int

const (
	KindText Kind = iota + 1
	KindLink
	KindTemplate
	KindComment
	KindTag
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindLink:
		return "link"
	case KindTemplate:
		return "template"
	case KindComment:
		return "comment"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Node is an element of parsed markup.
type Node interface {
	Kind() Kind
}

// Text is a run of plain markup.
type Text struct {
	Value string
}

// Link is an internal link `[[Target|Text]]`.
type Link struct {
	// Title holds the nodes of the link target.
	Title []Node

	// Text holds the nodes of the display text. It is meaningful only
	// when HasText is true.
	Text []Node

	// HasText is true when the link has a pipe, even if the display text
	// after it is empty.
	HasText bool
}

// Template is a transclusion `{{Name|param|...}}`.
type Template struct {
	Name   []Node
	Params [][]Node
}

// Comment is an HTML comment `<!-- ... -->`.
type Comment struct {
	Value string
}

// Tag is an HTML-like extension tag such as <ref> or <nowiki>.
type Tag struct {
	// Name is the lowercase tag name.
	Name string

	// Attrs is the raw attribute string of the opening tag.
	Attrs string

	// Body holds parsed content. Verbatim tags keep their content in Raw
	// instead.
	Body []Node

	// Raw is the unparsed content of a verbatim tag.
	Raw string

	// Verbatim tags (nowiki, pre, math, ...) are not parsed.
	Verbatim bool

	// SelfClosing tags like <ref name="a"/> have no content.
	SelfClosing bool
}

func (*Text) Kind() Kind     { return KindText }
func (*Link) Kind() Kind     { return KindLink }
func (*Template) Kind() Kind { return KindTemplate }
func (*Comment) Kind() Kind  { return KindComment }
func (*Tag) Kind() Kind      { return KindTag }

// Target returns the link target with markup removed and surrounding
// whitespace trimmed.
func (l *Link) Target() string {
	return strings.TrimSpace(Strip(l.Title))
}

// Display returns the display text with markup removed. The second value
// is false if the link has no explicit display text.
func (l *Link) Display() (string, bool) {
	if !l.HasText {
		return "", false
	}
	return Strip(l.Text), true
}

// NameText returns the template name with markup removed, trimmed and
// lowercased, with underscores replaced by spaces and an explicit
// "template:" prefix removed.
func (t *Template) NameText() string {
	res := strings.TrimSpace(Strip(t.Name))
	res = strings.ToLower(strings.ReplaceAll(res, "_", " "))
	res = strings.TrimPrefix(res, "template:")
	return strings.TrimSpace(res)
}

var (
	quoteRun = regexp.MustCompile(`''+`)
	htmlTag  = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(?:\s[^<>]*)?/?>`)
)

// invisibleTags never contribute to the visible text.
var invisibleTags = map[string]struct{}{
	"ref": {}, "math": {}, "chem": {}, "score": {}, "timeline": {},
	"graph": {}, "templatedata": {}, "gallery": {},
}

// Strip renders nodes to plain text the way a reader would see them:
// templates and comments disappear, links show their display text (or
// target when there is none), bold/italic quotes and HTML tags are
// removed.
func Strip(nodes []Node) string {
	var sb strings.Builder
	stripTo(&sb, nodes)
	res := quoteRun.ReplaceAllString(sb.String(), "")
	return htmlTag.ReplaceAllString(res, "")
}

func stripTo(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n.Kind() {
		case KindText:
			sb.WriteString(n.(*Text).Value)
		case KindLink:
			l := n.(*Link)
			if l.HasText {
				stripTo(sb, l.Text)
			} else {
				stripTo(sb, l.Title)
			}
		case KindTag:
			t := n.(*Tag)
			if _, ok := invisibleTags[t.Name]; ok {
				continue
			}
			if t.Verbatim {
				sb.WriteString(t.Raw)
				continue
			}
			stripTo(sb, t.Body)
		}
	}
}

// Walk visits nodes depth-first. Children of a node are visited only if fn
// returns true for it. Children are the display text of a link, the name
// and parameters of a template and the body of a parsed tag.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		switch n.Kind() {
		case KindLink:
			Walk(n.(*Link).Text, fn)
		case KindTemplate:
			t := n.(*Template)
			Walk(t.Name, fn)
			for _, p := range t.Params {
				Walk(p, fn)
			}
		case KindTag:
			Walk(n.(*Tag).Body, fn)
		}
	}
}
