package wikitext_test

import (
	"strings"
	"testing"

	"github.com/gnames/wikialias/pkg/wikitext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func links(t *testing.T, src string) []*wikitext.Link {
	nodes, err := wikitext.Parse(src)
	require.NoError(t, err)
	var res []*wikitext.Link
	wikitext.Walk(nodes, func(n wikitext.Node) bool {
		if n.Kind() == wikitext.KindLink {
			res = append(res, n.(*wikitext.Link))
		}
		return true
	})
	return res
}

func TestParseLinks(t *testing.T) {
	tests := []struct {
		msg     string
		src     string
		target  string
		display string
		hasText bool
	}{
		{"simple", "[[Mercury]]", "Mercury", "", false},
		{"piped", "[[Mercury (planet)|Mercury]]", "Mercury (planet)", "Mercury", true},
		{"empty display", "[[Mercury|]]", "Mercury", "", true},
		{"bold display", "[[Mercury|'''Hg''']]", "Mercury", "Hg", true},
		{"spaces", "[[ Mercury | the planet ]]", "Mercury", " the planet ", true},
		{"surrounded", "The [[Sun|star]] shines.", "Sun", "star", true},
		{"display with pipe", "[[A|b|c]]", "A", "b|c", true},
		{"html in display", "[[A|x<br/>y]]", "A", "xy", true},
		{"template in display", "[[A|x{{lang|en|y}}]]", "A", "x", true},
	}

	for _, v := range tests {
		res := links(t, v.src)
		require.Len(t, res, 1, v.msg)
		assert.Equal(t, v.target, res[0].Target(), v.msg)
		d, ok := res[0].Display()
		assert.Equal(t, v.hasText, ok, v.msg)
		assert.Equal(t, v.display, d, v.msg)
	}
}

func TestParseNestedLinks(t *testing.T) {
	src := "[[File:Hg.jpg|thumb|Liquid [[Mercury (element)|mercury]] drop]]"
	res := links(t, src)
	require.Len(t, res, 2)
	assert.Equal(t, "File:Hg.jpg", res[0].Target())
	assert.Equal(t, "Mercury (element)", res[1].Target())
	d, _ := res[1].Display()
	assert.Equal(t, "mercury", d)
}

func TestParseUnbalanced(t *testing.T) {
	tests := []struct {
		msg   string
		src   string
		links int
	}{
		{"unclosed link", "[[Mercury", 0},
		{"unclosed link then link", "[[Mercury [[Venus]]", 1},
		{"newline in title", "[[Mer\ncury]]", 0},
		{"single brackets", "[Mercury]", 0},
		{"stray closing", "]] [[Venus]] ]]", 1},
		{"unclosed template", "{{aimai [[Venus]]", 1},
		{"unclosed comment hides link", "<!-- [[Venus]]", 0},
		{"unclosed ref", "<ref>[[Venus]]", 1},
	}

	for _, v := range tests {
		assert.Len(t, links(t, v.src), v.links, v.msg)
	}
}

func TestParseTemplate(t *testing.T) {
	nodes, err := wikitext.Parse("{{Aimai}}\n{{Infobox|name=[[Mercury]]|x=1}}")
	require.NoError(t, err)

	var names []string
	var params [][]wikitext.Node
	for _, n := range nodes {
		if n.Kind() == wikitext.KindTemplate {
			tpl := n.(*wikitext.Template)
			names = append(names, tpl.NameText())
			params = append(params, tpl.Params...)
		}
	}
	assert.Equal(t, []string{"aimai", "infobox"}, names)
	assert.Len(t, params, 2)
	assert.Equal(t, "name=Mercury", wikitext.Strip(params[0]))
}

func TestTemplateNameText(t *testing.T) {
	tests := []struct {
		msg, src, name string
	}{
		{"plain", "{{aimai}}", "aimai"},
		{"case", "{{AIMAI}}", "aimai"},
		{"spaces", "{{ Aimai \n}}", "aimai"},
		{"prefix", "{{Template:Aimai}}", "aimai"},
		{"underscore", "{{Set_index}}", "set index"},
		{"with params", "{{Disambiguation|geo}}", "disambiguation"},
	}
	for _, v := range tests {
		nodes, err := wikitext.Parse(v.src)
		require.NoError(t, err, v.msg)
		require.Len(t, nodes, 1, v.msg)
		require.Equal(t, wikitext.KindTemplate, nodes[0].Kind(), v.msg)
		assert.Equal(t, v.name, nodes[0].(*wikitext.Template).NameText(), v.msg)
	}
}

func TestTemplateArgument(t *testing.T) {
	nodes, err := wikitext.Parse("a{{{1|x}}}b")
	require.NoError(t, err)
	assert.Equal(t, "ab", wikitext.Strip(nodes))
}

func TestParseTags(t *testing.T) {
	src := `a<nowiki>[[Not a link]]</nowiki>b<ref name="x">[[Cited|c]]</ref>` +
		`<ref name="y"/><math>[[x]]</math>`
	nodes, err := wikitext.Parse(src)
	require.NoError(t, err)

	var tags []*wikitext.Tag
	for _, n := range nodes {
		if n.Kind() == wikitext.KindTag {
			tags = append(tags, n.(*wikitext.Tag))
		}
	}
	require.Len(t, tags, 4)
	assert.True(t, tags[0].Verbatim)
	assert.Equal(t, "[[Not a link]]", tags[0].Raw)
	assert.Equal(t, "ref", tags[1].Name)
	assert.Equal(t, `name="x"`, tags[1].Attrs)
	assert.True(t, tags[2].SelfClosing)
	assert.Equal(t, "math", tags[3].Name)

	// nowiki text is visible, refs and math are not
	assert.Equal(t, "a[[Not a link]]b", wikitext.Strip(nodes))

	ls := links(t, src)
	require.Len(t, ls, 1)
	assert.Equal(t, "Cited", ls[0].Target())
}

func TestParseCaseInsensitiveClosingTag(t *testing.T) {
	nodes, err := wikitext.Parse("<REF>[[A|b]]</Ref>tail")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, wikitext.KindTag, nodes[0].Kind())
	assert.Equal(t, "tail", nodes[1].(*wikitext.Text).Value)
}

func TestParseComment(t *testing.T) {
	nodes, err := wikitext.Parse("a<!-- [[Hidden]] -->b")
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, wikitext.KindComment, nodes[1].Kind())
	assert.Equal(t, "ab", wikitext.Strip(nodes))
}

func TestStrip(t *testing.T) {
	tests := []struct {
		msg, src, res string
	}{
		{"text", "plain", "plain"},
		{"link without text", "[[Mercury]] is", "Mercury is"},
		{"link with text", "[[Mercury (planet)|Mercury]]", "Mercury"},
		{"italic", "''Hg''", "Hg"},
		{"bold italic", "'''''Hg'''''", "Hg"},
		{"apostrophe kept", "Rock 'n' roll", "Rock 'n' roll"},
		{"template removed", "a{{cite|x}}b", "ab"},
		{"span", `<span style="x">Hg</span>`, "Hg"},
	}
	for _, v := range tests {
		nodes, err := wikitext.Parse(v.src)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, wikitext.Strip(nodes), v.msg)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	nodes, err := wikitext.Parse("{{Infobox|[[A|a]]}}[[B|b]]")
	require.NoError(t, err)

	var targets []string
	wikitext.Walk(nodes, func(n wikitext.Node) bool {
		switch n.Kind() {
		case wikitext.KindTemplate:
			return false
		case wikitext.KindLink:
			targets = append(targets, n.(*wikitext.Link).Target())
		}
		return true
	})
	assert.Equal(t, []string{"B"}, targets)
}

func TestParseTooDeep(t *testing.T) {
	src := strings.Repeat("{{a|", 100) + strings.Repeat("}}", 100)
	_, err := wikitext.Parse(src)
	assert.ErrorIs(t, err, wikitext.ErrTooDeep)
}

func TestParsePathological(t *testing.T) {
	src := strings.Repeat("[[a|", 5_000) + "]]"
	_, err := wikitext.Parse(src)
	if err != nil {
		assert.True(t,
			err == wikitext.ErrTooDeep || err == wikitext.ErrTooComplex)
	}
}

func TestParseManyUnclosed(t *testing.T) {
	body := strings.Repeat("see [[Mercury (planet)|Mercury]] and {{cite|x}} more.\n", 200)
	tests := []struct {
		msg    string
		opener string
	}{
		{"templates", "text {{broken "},
		{"links", "text [[broken "},
		{"refs", "text <ref>broken "},
	}

	for _, v := range tests {
		for _, k := range []int{1, 9, 12, 40} {
			src := strings.Repeat(v.opener, k) + body
			assert.Len(t, links(t, src), 200, v.msg)
		}
	}
}

func TestParseUnclosedInsideTemplate(t *testing.T) {
	res := links(t, "{{a|{{b|{{c|[[X|y]]")
	require.Len(t, res, 1)
	assert.Equal(t, "X", res[0].Target())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "link", wikitext.KindLink.String())
	assert.Equal(t, "unknown", wikitext.Kind(0).String())
}
