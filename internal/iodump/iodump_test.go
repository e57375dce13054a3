package iodump_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/gnames/gn"
	"github.com/gnames/wikialias/internal/iodump"
	"github.com/gnames/wikialias/pkg/config"
	"github.com/gnames/wikialias/pkg/ent/wiki"
	"github.com/gnames/wikialias/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dumpXML = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/" version="0.10" xml:lang="ja">
  <siteinfo>
    <sitename>Wikipedia</sitename>
    <dbname>jawiki</dbname>
    <base>https://ja.wikipedia.org/wiki/</base>
    <generator>MediaWiki 1.36</generator>
    <case>first-letter</case>
    <namespaces>
      <namespace key="0" case="first-letter" />
      <namespace key="14" case="first-letter">Category</namespace>
    </namespaces>
  </siteinfo>
  <page>
    <title>Mercury</title>
    <ns>0</ns>
    <id>10</id>
    <revision>
      <id>100</id>
      <text xml:space="preserve">{{aimai}}
* [[Mercury (planet)]]</text>
    </revision>
  </page>
  <page>
    <title>Category:Planets</title>
    <ns>14</ns>
    <id>11</id>
    <revision>
      <id>101</id>
      <text xml:space="preserve">[[Sun|Sol]]</text>
    </revision>
  </page>
  <page>
    <title>カテゴリ:惑星</title>
    <ns>14</ns>
    <id>12</id>
    <revision>
      <id>102</id>
      <text xml:space="preserve">[[Sun|Sol]]</text>
    </revision>
  </page>
  <page>
    <title>No revisions</title>
    <ns>0</ns>
    <id>13</id>
  </page>
  <page>
    <title>Mercury (planet)</title>
    <ns>0</ns>
    <id>14</id>
    <revision>
      <id>103</id>
      <text xml:space="preserve">old</text>
    </revision>
    <revision>
      <id>104</id>
      <text xml:space="preserve">The [[Sun|star]] is near.</text>
    </revision>
  </page>
</mediawiki>
`

func writeDump(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func collect(t *testing.T, d *iodump.Dump) []wiki.Page {
	t.Helper()
	ch := make(chan wiki.Page)
	var res []wiki.Page
	done := make(chan struct{})
	go func() {
		for p := range ch {
			res = append(res, p)
		}
		close(done)
	}()
	err := d.Pages(context.Background(), ch)
	close(ch)
	<-done
	require.NoError(t, err)
	return res
}

func TestOpen(t *testing.T) {
	path := writeDump(t, "jawiki-pages-articles.xml", dumpXML)
	d, err := iodump.Open(path, config.DefaultIgnoredNamespaces)
	require.NoError(t, err)
	assert.Equal(t, "ja", d.Locale())
	assert.True(t, d.Filter().Ignored("カテゴリ:惑星"))
}

func TestOpenErrors(t *testing.T) {
	noLang := `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/">
<siteinfo></siteinfo>
</mediawiki>`
	emptyLang := `<mediawiki xml:lang="">` + "\n</mediawiki>"
	langLater := "<mediawiki>\n<page xml:lang=\"ja\"></page></mediawiki>"

	tests := []struct {
		msg  string
		path string
		code gn.ErrorCode
	}{
		{"missing file", filepath.Join(t.TempDir(), "none.xml"),
			errcode.DumpOpenError},
		{"no lang", writeDump(t, "a.xml", noLang), errcode.DumpLocaleError},
		{"empty lang", writeDump(t, "b.xml", emptyLang),
			errcode.DumpLocaleError},
		{"lang not on first line", writeDump(t, "c.xml", langLater),
			errcode.DumpLocaleError},
		{"empty file", writeDump(t, "d.xml", ""), errcode.DumpLocaleError},
		{"stdin", "-", errcode.DumpOpenError},
	}

	for _, v := range tests {
		_, err := iodump.Open(v.path, config.DefaultIgnoredNamespaces)
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}
}

func TestPages(t *testing.T) {
	path := writeDump(t, "jawiki-pages-articles.xml", dumpXML)
	d, err := iodump.Open(path, config.DefaultIgnoredNamespaces)
	require.NoError(t, err)

	pages := collect(t, d)
	require.Len(t, pages, 2)
	assert.Equal(t, 10, pages[0].ID)
	assert.Equal(t, "Mercury", pages[0].Title)
	assert.Contains(t, pages[0].Markup, "* [[Mercury (planet)]]")
	assert.Equal(t, 14, pages[1].ID)
	assert.Equal(t, "The [[Sun|star]] is near.", pages[1].Markup)

	read, skipped := d.Counts()
	assert.Equal(t, 5, read)
	assert.Equal(t, 3, skipped)

	// the dump can be read again
	assert.Len(t, collect(t, d), 2)
}

func TestPagesBzip2(t *testing.T) {
	var buf bytes.Buffer
	bz, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte(dumpXML))
	require.NoError(t, err)
	require.NoError(t, bz.Close())

	path := writeDump(t, "jawiki-pages-articles.xml.bz2", buf.String())
	d, err := iodump.Open(path, config.DefaultIgnoredNamespaces)
	require.NoError(t, err)
	assert.Equal(t, "ja", d.Locale())
	assert.Len(t, collect(t, d), 2)
}

func TestPagesCustomNamespaces(t *testing.T) {
	path := writeDump(t, "jawiki-pages-articles.xml", dumpXML)
	d, err := iodump.Open(path, []string{"mercury"})
	require.NoError(t, err)

	// localized ja prefixes are still applied
	pages := collect(t, d)
	assert.Empty(t, pages)
}

func TestPagesBroken(t *testing.T) {
	broken := dumpXML[:len(dumpXML)/2]
	path := writeDump(t, "broken.xml", broken)
	d, err := iodump.Open(path, config.DefaultIgnoredNamespaces)
	require.NoError(t, err)

	ch := make(chan wiki.Page, 10)
	err = d.Pages(context.Background(), ch)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DumpReadError, gnErr.Code)
}

func TestPagesMalformedBlocks(t *testing.T) {
	dump := `<mediawiki xml:lang="en">
  <siteinfo><sitename>Wikipedia</sitename></siteinfo>
  <page>
    <ns>0</ns>
    <id>1</id>
    <revision><text>[[Sun|Sol]]</text></revision>
  </page>
  <page>
    <title>No ID</title>
    <revision><text>[[Sun|Sol]]</text></revision>
  </page>
  <page>
    <title>  </title>
    <id>2</id>
    <revision><text>[[Sun|Sol]]</text></revision>
  </page>
  <page>
    <title>Venus</title>
    <id>3</id>
    <revision><text>[[Sun|star]]</text></revision>
  </page>
</mediawiki>
`
	path := writeDump(t, "enwiki-pages-articles.xml", dump)
	d, err := iodump.Open(path, config.DefaultIgnoredNamespaces)
	require.NoError(t, err)

	pages := collect(t, d)
	require.Len(t, pages, 1)
	assert.Equal(t, "Venus", pages[0].Title)

	read, skipped := d.Counts()
	assert.Equal(t, 4, read)
	assert.Equal(t, 3, skipped)
}

func TestPagesBrokenElement(t *testing.T) {
	dump := `<mediawiki xml:lang="en">
  <siteinfo><sitename>Wikipedia</sitename></siteinfo>
  <page>
    <title>Venus</title>
    <id>3</id>
    <revision><text>[[Sun|star]]</text></revision>
  </page>
  <page>
    <title>Mars</title>
    <id>4</id>
    <revision><text>[[Sun|star]]</revision>
  </page>
  <page>
    <title>Earth</title>
    <id>5</id>
    <revision><text>[[Sun|star]]</text></revision>
  </page>
</mediawiki>
`
	path := writeDump(t, "enwiki-pages-articles.xml", dump)
	d, err := iodump.Open(path, config.DefaultIgnoredNamespaces)
	require.NoError(t, err)

	ch := make(chan wiki.Page, 10)
	err = d.Pages(context.Background(), ch)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DumpReadError, gnErr.Code)
	assert.Equal(t, []any{path, 1}, gnErr.Vars)
	require.Len(t, ch, 1)
	assert.Equal(t, "Venus", (<-ch).Title)
}

func TestPagesCancel(t *testing.T) {
	path := writeDump(t, "jawiki-pages-articles.xml", dumpXML)
	d, err := iodump.Open(path, config.DefaultIgnoredNamespaces)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = d.Pages(ctx, make(chan wiki.Page))
	assert.ErrorIs(t, err, context.Canceled)
}
