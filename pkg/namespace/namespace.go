// Package namespace decides which pages and link targets belong to
// namespaces that never describe an entity.
package namespace

import (
	"strings"
)

// localized contains translated namespace prefixes that are added to the
// configured ones for a dump locale.
var localized = map[string][]string{
	"ja": {
		"wikipedia:", "プロジェクト:", "category:", "カテゴリ:", "file:",
		"ファイル:", "画像:", "portal:", "ポータル:", "template:",
		"テンプレート:", "mediawiki:", "user:", "利用者:", "help:",
		"ヘルプ:", "book:", "ブック:", "draft:", "ノート:", "特別:",
	},
	"de": {
		"kategorie:", "datei:", "bild:", "vorlage:", "benutzer:", "hilfe:",
	},
	"fr": {
		"catégorie:", "fichier:", "modèle:", "utilisateur:", "aide:",
		"projet:",
	},
}

// disambiguation contains the names of templates that mark a page as a
// disambiguation page.
var disambiguation = map[string][]string{
	"ja": {"aimai", "曖昧さ回避"},
	"en": {"disambiguation", "disambig", "dab", "dmbox", "hndis", "geodis"},
}

var defaultMarkers = []string{"aimai", "disambiguation"}

// Filter matches titles against a set of ignored namespace prefixes.
type Filter struct {
	prefixes []string
}

// New creates a Filter from configured prefixes extended with the
// localized prefixes of the locale. Matching is case-insensitive.
func New(prefixes []string, locale string) *Filter {
	seen := make(map[string]struct{})
	res := &Filter{}
	all := append(append([]string(nil), prefixes...), localized[locale]...)
	for _, v := range all {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res.prefixes = append(res.prefixes, v)
	}
	return res
}

// Prefixes returns the prefixes used by the filter.
func (f *Filter) Prefixes() []string {
	return f.prefixes
}

// Ignored returns true if the lowercased title starts with one of the
// prefixes. A leading colon, used by links to escape namespaces, is
// disregarded.
func (f *Filter) Ignored(title string) bool {
	if f == nil {
		return false
	}
	title = strings.TrimPrefix(strings.TrimSpace(title), ":")
	title = strings.ToLower(title)
	for _, v := range f.prefixes {
		if strings.HasPrefix(title, v) {
			return true
		}
	}
	return false
}

// DisambiguationMarkers returns lowercase template names that mark a
// disambiguation page for the given locale.
func DisambiguationMarkers(locale string) []string {
	res := append([]string(nil), defaultMarkers...)
	for _, v := range disambiguation[locale] {
		if !contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
