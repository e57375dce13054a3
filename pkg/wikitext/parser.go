package wikitext

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrTooDeep is returned when links, templates and tags are nested
	// deeper than maxDepth.
	ErrTooDeep = errors.New("markup nesting is too deep")

	// ErrTooComplex is returned when parsing needs too many steps, which
	// happens with long runs of unbalanced brackets.
	ErrTooComplex = errors.New("markup is too complex")
)

const (
	maxDepth = 64

	// stepsPerByte limits the work done per byte of input.
	stepsPerByte = 64
	minSteps     = 10_000
)

type stopSet uint8

const (
	stopPipe stopSet = 1 << iota
	stopLinkEnd
	stopTemplateEnd
	stopNewline
)

// verbatimTags keep their content unparsed.
var verbatimTags = map[string]struct{}{
	"nowiki": {}, "pre": {}, "math": {}, "chem": {}, "source": {},
	"syntaxhighlight": {}, "score": {}, "timeline": {}, "graph": {},
	"templatedata": {}, "gallery": {},
}

// parsedTags have their content parsed as markup.
var parsedTags = map[string]struct{}{
	"ref": {}, "small": {}, "big": {}, "sup": {}, "sub": {}, "span": {},
	"div": {}, "b": {}, "i": {}, "u": {}, "s": {}, "center": {},
	"blockquote": {}, "poem": {}, "includeonly": {}, "onlyinclude": {},
	"noinclude": {},
}

var openTag = regexp.MustCompile(`^<([a-zA-Z]+)([^<>]*?)(/?)>`)

type parser struct {
	src      string
	pos      int
	depth    int
	steps    int
	maxSteps int

	// last positions of closing brackets, openers after them cannot close
	lastLinkEnd     int
	lastTemplateEnd int
	lastTagEnd      map[string]int

	// openers that failed once are text on every later visit; the value
	// tells if the failure was caused by the end of input
	failedLinks     map[int]bool
	failedTemplates map[int]struct{}
	failedTags      map[int]struct{}
}

// Parse converts markup to a list of nodes. Unbalanced brackets become
// text. An error is returned only for pathological input that is nested
// too deeply or needs too much backtracking.
func Parse(src string) ([]Node, error) {
	p := &parser{
		src:             src,
		maxSteps:        max(len(src)*stepsPerByte, minSteps),
		lastLinkEnd:     strings.LastIndex(src, "]]"),
		lastTemplateEnd: strings.LastIndex(src, "}}"),
		lastTagEnd:      make(map[string]int),
		failedLinks:     make(map[int]bool),
		failedTemplates: make(map[int]struct{}),
		failedTags:      make(map[int]struct{}),
	}
	return p.nodes(0, "")
}

// nodes parses until one of the stop markers, the closing tag, or the end of
// input. The stop marker is not consumed.
func (p *parser) nodes(stop stopSet, closeTag string) ([]Node, error) {
	var res []Node
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			res = append(res, &Text{Value: buf.String()})
			buf.Reset()
		}
	}

	for p.pos < len(p.src) {
		p.steps++
		if p.steps > p.maxSteps {
			return nil, ErrTooComplex
		}

		rest := p.src[p.pos:]
		c := rest[0]
		switch {
		case c == '|' && stop&stopPipe != 0,
			c == '\n' && stop&stopNewline != 0,
			c == ']' && stop&stopLinkEnd != 0 && strings.HasPrefix(rest, "]]"),
			c == '}' && stop&stopTemplateEnd != 0 && strings.HasPrefix(rest, "}}"):
			flush()
			return res, nil

		case c == '<' && closeTag != "" && isClosingTag(rest, closeTag):
			flush()
			return res, nil

		case c == '<' && strings.HasPrefix(rest, "<!--"):
			flush()
			res = append(res, p.comment())

		case c == '<':
			n, ok, err := p.tag()
			if err != nil {
				return nil, err
			}
			if ok {
				flush()
				res = append(res, n)
				continue
			}
			buf.WriteByte(c)
			p.pos++

		case c == '[' && strings.HasPrefix(rest, "[["):
			n, ok, err := p.link()
			if err != nil {
				return nil, err
			}
			if ok {
				flush()
				res = append(res, n)
				continue
			}
			// an enclosing link cannot close either
			if p.failedLinks[p.pos] && stop&stopLinkEnd != 0 {
				flush()
				p.pos = len(p.src)
				return res, nil
			}
			buf.WriteString("[[")
			p.pos += 2

		case c == '{' && strings.HasPrefix(rest, "{{{"):
			// template argument, never visible in articles
			end := strings.Index(rest[3:], "}}}")
			if end < 0 {
				buf.WriteString("{{{")
				p.pos += 3
				continue
			}
			p.pos += end + 6

		case c == '{' && strings.HasPrefix(rest, "{{"):
			n, ok, err := p.template()
			if err != nil {
				return nil, err
			}
			if ok {
				flush()
				res = append(res, n)
				continue
			}
			// templates fail only at the end of input, so an enclosing
			// template fails too
			if stop&stopTemplateEnd != 0 {
				flush()
				p.pos = len(p.src)
				return res, nil
			}
			buf.WriteString("{{")
			p.pos += 2

		default:
			next := strings.IndexAny(rest[1:], "|\n[]{}<")
			if next < 0 {
				next = len(rest) - 1
			}
			buf.WriteString(rest[:next+1])
			p.pos += next + 1
		}
	}
	flush()
	return res, nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return ErrTooDeep
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// link parses `[[title|text]]` at the current position. If the link is
// not closed the position is restored and ok is false.
func (p *parser) link() (n Node, ok bool, err error) {
	start := p.pos
	if _, failed := p.failedLinks[start]; failed {
		return nil, false, nil
	}
	if start+2 > p.lastLinkEnd {
		p.failedLinks[start] = true
		return nil, false, nil
	}
	if err = p.enter(); err != nil {
		return nil, false, err
	}
	defer p.leave()

	fail := func(atEOF bool) (Node, bool, error) {
		p.pos = start
		p.failedLinks[start] = atEOF
		return nil, false, nil
	}

	p.pos += 2
	title, err := p.nodes(stopPipe|stopLinkEnd|stopNewline, "")
	if err != nil {
		return nil, false, err
	}
	if p.pos >= len(p.src) {
		return fail(true)
	}
	if p.src[p.pos] == '\n' || hasKind(title, KindLink) {
		return fail(false)
	}

	res := &Link{Title: title}
	if p.src[p.pos] == '|' {
		p.pos++
		text, err := p.nodes(stopLinkEnd, "")
		if err != nil {
			return nil, false, err
		}
		if p.pos >= len(p.src) {
			return fail(true)
		}
		res.Text = text
		res.HasText = true
	}
	p.pos += 2
	return res, true, nil
}

// template parses `{{name|param|...}}` at the current position.
func (p *parser) template() (n Node, ok bool, err error) {
	start := p.pos
	if _, failed := p.failedTemplates[start]; failed {
		return nil, false, nil
	}
	if start+2 > p.lastTemplateEnd {
		p.failedTemplates[start] = struct{}{}
		return nil, false, nil
	}
	if err = p.enter(); err != nil {
		return nil, false, err
	}
	defer p.leave()

	p.pos += 2
	name, err := p.nodes(stopPipe|stopTemplateEnd, "")
	if err != nil {
		return nil, false, err
	}
	res := &Template{Name: name}
	for p.pos < len(p.src) && p.src[p.pos] == '|' {
		p.pos++
		param, err := p.nodes(stopPipe|stopTemplateEnd, "")
		if err != nil {
			return nil, false, err
		}
		res.Params = append(res.Params, param)
	}
	if p.pos >= len(p.src) {
		p.pos = start
		p.failedTemplates[start] = struct{}{}
		return nil, false, nil
	}
	p.pos += 2
	return res, true, nil
}

// comment consumes `<!-- ... -->`. An unterminated comment runs to the end
// of input.
func (p *parser) comment() Node {
	rest := p.src[p.pos+4:]
	end := strings.Index(rest, "-->")
	if end < 0 {
		p.pos = len(p.src)
		return &Comment{Value: rest}
	}
	p.pos += 4 + end + 3
	return &Comment{Value: rest[:end]}
}

// tag parses a known HTML-like tag at the current position. Unknown tags
// and tags without a closing counterpart are left as text.
func (p *parser) tag() (n Node, ok bool, err error) {
	start := p.pos
	if _, failed := p.failedTags[start]; failed {
		return nil, false, nil
	}
	m := openTag.FindStringSubmatch(p.src[start:])
	if m == nil {
		return nil, false, nil
	}
	name := strings.ToLower(m[1])
	_, verbatim := verbatimTags[name]
	_, parsed := parsedTags[name]
	if !verbatim && !parsed {
		return nil, false, nil
	}

	res := &Tag{Name: name, Attrs: strings.TrimSpace(m[2]), Verbatim: verbatim}
	if m[3] == "/" {
		res.SelfClosing = true
		p.pos += len(m[0])
		return res, true, nil
	}

	bodyStart := start + len(m[0])
	if bodyStart > p.lastClosingTag(name) {
		p.failedTags[start] = struct{}{}
		return nil, false, nil
	}
	if verbatim {
		end := indexClosingTag(p.src[bodyStart:], name)
		res.Raw = p.src[bodyStart : bodyStart+end]
		p.pos = bodyStart + end
		p.skipClosingTag()
		return res, true, nil
	}

	if err = p.enter(); err != nil {
		return nil, false, err
	}
	defer p.leave()

	p.pos = bodyStart
	body, err := p.nodes(0, name)
	if err != nil {
		return nil, false, err
	}
	if p.pos >= len(p.src) {
		p.pos = start
		p.failedTags[start] = struct{}{}
		return nil, false, nil
	}
	res.Body = body
	p.skipClosingTag()
	return res, true, nil
}

// skipClosingTag moves past `</name ...>` at the current position.
func (p *parser) skipClosingTag() {
	end := strings.IndexByte(p.src[p.pos:], '>')
	if end < 0 {
		p.pos = len(p.src)
		return
	}
	p.pos += end + 1
}

func isClosingTag(s, name string) bool {
	if len(s) < len(name)+3 || s[1] != '/' {
		return false
	}
	if !strings.EqualFold(s[2:2+len(name)], name) {
		return false
	}
	c := s[2+len(name)]
	return c == '>' || c == ' ' || c == '\t' || c == '\n'
}

// lastClosingTag returns the position of the last `</name>` in the input
// or -1.
func (p *parser) lastClosingTag(name string) int {
	if res, ok := p.lastTagEnd[name]; ok {
		return res
	}
	res := -1
	for i := 0; ; {
		j := indexClosingTag(p.src[i:], name)
		if j < 0 {
			break
		}
		res = i + j
		i = res + 2
	}
	p.lastTagEnd[name] = res
	return res
}

func indexClosingTag(s, name string) int {
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], "</")
		if j < 0 {
			return -1
		}
		if isClosingTag(s[i+j:], name) {
			return i + j
		}
		i += j + 2
	}
	return -1
}

func hasKind(nodes []Node, k Kind) bool {
	for _, n := range nodes {
		if n.Kind() == k {
			return true
		}
	}
	return false
}
