package namespace_test

import (
	"testing"

	"github.com/gnames/wikialias/pkg/config"
	"github.com/gnames/wikialias/pkg/namespace"
	"github.com/stretchr/testify/assert"
)

func TestIgnored(t *testing.T) {
	f := namespace.New(config.DefaultIgnoredNamespaces, "en")

	tests := []struct {
		msg   string
		title string
		res   bool
	}{
		{"article", "Mercury (planet)", false},
		{"category", "Category:Foo", true},
		{"category lowercase", "category:Foo", true},
		{"category uppercase", "CATEGORY:Foo", true},
		{"file", "File:Mercury.jpg", true},
		{"template", "Template:Aimai", true},
		{"draft", "Draft:New article", true},
		{"escaped link", ":Category:Foo", true},
		{"colon in article title", "Star Wars: A New Hope", false},
		{"prefix without colon", "Categoryless", false},
		{"empty", "", false},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, f.Ignored(v.title), v.msg)
	}
}

func TestIgnoredLocalized(t *testing.T) {
	ja := namespace.New(config.DefaultIgnoredNamespaces, "ja")
	en := namespace.New(config.DefaultIgnoredNamespaces, "en")

	assert.True(t, ja.Ignored("カテゴリ:日本の都市"))
	assert.True(t, ja.Ignored("Category:日本の都市"))
	assert.False(t, en.Ignored("カテゴリ:日本の都市"))
	assert.False(t, ja.Ignored("東京都"))
}

func TestNewDeduplicates(t *testing.T) {
	f := namespace.New([]string{"Category:", "category:", " ", "file:"}, "")
	assert.Equal(t, []string{"category:", "file:"}, f.Prefixes())
}

func TestNilFilter(t *testing.T) {
	var f *namespace.Filter
	assert.False(t, f.Ignored("Category:Foo"))
}

func TestDisambiguationMarkers(t *testing.T) {
	assert.Equal(t,
		[]string{"aimai", "disambiguation", "曖昧さ回避"},
		namespace.DisambiguationMarkers("ja"))
	assert.Contains(t, namespace.DisambiguationMarkers("en"), "disambig")
	assert.Equal(t,
		[]string{"aimai", "disambiguation"},
		namespace.DisambiguationMarkers("xx"))
}
