// Package normalize provides pure functions that bring page titles and
// alias surface forms to the canonical shape used as dictionary keys and
// values.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// trailingQualifier matches a Wikipedia-style disambiguator at the end of
// a string, e.g. " (planet)" in "Mercury (planet)".
var trailingQualifier = regexp.MustCompile(` \([^)]*\)$`)

var aliasReplacer = strings.NewReplacer(
	"_", " ",
	"\t", " ",
	"\n", "",
	"\r", "",
)

// Title converts a raw (underscore-separated) title to its display form.
func Title(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// Alias normalizes a surface form. It applies NFKC normalization, strips
// one trailing parenthetical qualifier, replaces underscores and tabs
// with spaces and removes line breaks.
//
// The steps are repeated until the string does not change, so that a
// qualifier uncovered by a later step (for example "Foo_(bar)") is stripped
// too and Alias(Alias(s)) == Alias(s) holds for any s.
func Alias(s string) string {
	for {
		res := aliasOnce(s)
		if res == s {
			return res
		}
		s = res
	}
}

func aliasOnce(s string) string {
	s = norm.NFKC.String(s)
	s = trailingQualifier.ReplaceAllString(s, "")
	return aliasReplacer.Replace(s)
}
