package idtable_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gnames/wikialias/pkg/idtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageDump = `-- MySQL dump
INSERT INTO ` + "`page`" + ` VALUES (1,0,'Mercury_(planet)','',0,0,0.5,'20200101','20200101',1,100,'wikitext',NULL),(42,0,'Hg','',1,0,0.3,'20200101',NULL,2,20,'wikitext',NULL),(7,14,'Planets','',0,0,0.1,'20200101',NULL,3,30,'wikitext',NULL);
INSERT INTO ` + "`page`" + ` VALUES (100,0,Numbers,'',0,0,0.2,'20200101',NULL,4,5,'wikitext',NULL);
`

func TestExtract(t *testing.T) {
	res, err := idtable.Extract(strings.NewReader(pageDump))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Len())
	tests := []struct {
		id    int
		title string
		ok    bool
	}{
		{1, "Mercury_(planet)", true},
		{42, "Hg", true},
		{7, "Planets", true},
		{100, "Numbers", true},
		{2, "", false},
	}
	for _, v := range tests {
		title, ok := res.Title(v.id)
		assert.Equal(t, v.ok, ok, v.id)
		assert.Equal(t, v.title, title, v.id)
	}
}

func TestExtractRedirect(t *testing.T) {
	dump := "INSERT INTO `redirect` VALUES " +
		"(42,0,'Mercury_(element)','',''),(43,0,'Sun','','');\n"
	res, err := idtable.Extract(strings.NewReader(dump))
	require.NoError(t, err)
	assert.Equal(t, idtable.Map{42: "Mercury_(element)", 43: "Sun"}, res)
}

func TestExtractLastWins(t *testing.T) {
	dump := "(5,0,'First','',0);\n(5,0,'Second','',0);"
	res, err := idtable.Extract(strings.NewReader(dump))
	require.NoError(t, err)
	title, ok := res.Title(5)
	assert.True(t, ok)
	assert.Equal(t, "Second", title)
	assert.Equal(t, 1, res.Len())
}

func TestExtractEmpty(t *testing.T) {
	res, err := idtable.Extract(strings.NewReader("-- nothing here\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Len())
}

func TestScanOrder(t *testing.T) {
	dump := "(3,0,'C','',0),(1,0,'A','',0)\n(2,0,'B','',0)"
	var ids []int
	var titles []string
	err := idtable.Scan(strings.NewReader(dump),
		func(id int, title string) error {
			ids = append(ids, id)
			titles = append(titles, title)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ids)
	assert.Equal(t, []string{"C", "A", "B"}, titles)
}

func TestScanStops(t *testing.T) {
	stop := errors.New("stop")
	var count int
	err := idtable.Scan(strings.NewReader(pageDump),
		func(int, string) error {
			count++
			if count == 2 {
				return stop
			}
			return nil
		})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) {
	return 0, errors.New("truncated archive")
}

func TestScanReadError(t *testing.T) {
	_, err := idtable.Extract(failReader{})
	assert.Error(t, err)
}
