// Package aliasdict keeps the alias dictionary and folds per-page
// extraction results into it.
package aliasdict

import (
	"slices"
)

// Set is a set of strings. Insertion order is not kept.
type Set map[string]struct{}

// Add inserts v into the set.
func (s Set) Add(v string) {
	s[v] = struct{}{}
}

// Has returns true if v is in the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members of the set in lexical order.
func (s Set) Sorted() []string {
	res := make([]string, 0, len(s))
	for k := range s {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// Dictionary is the alias dictionary. Keys are unique, values are sets.
type Dictionary struct {
	// Alias maps a canonical title to all surface forms known to refer
	// to it.
	Alias map[string]Set

	// Redirect maps IDs of redirect pages to their own titles.
	Redirect map[int]Set

	// Aimai maps IDs of disambiguation pages to the titles they list.
	Aimai map[int]Set
}

// New creates an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{
		Alias:    make(map[string]Set),
		Redirect: make(map[int]Set),
		Aimai:    make(map[int]Set),
	}
}

// AddAlias adds a surface form for a title. Empty strings are ignored.
func (d *Dictionary) AddAlias(title, alias string) {
	if title == "" || alias == "" {
		return
	}
	addTo(d.Alias, title, alias)
}

// AddRedirect records id as a redirect page with the given title.
func (d *Dictionary) AddRedirect(id int, title string) {
	addTo(d.Redirect, id, title)
}

// AddAimai records id as a disambiguation page listing member. An empty
// member only marks id as a disambiguation page.
func (d *Dictionary) AddAimai(id int, member string) {
	addTo(d.Aimai, id, member)
}

// IsCanonical returns false for IDs of redirect and disambiguation pages.
func (d *Dictionary) IsCanonical(id int) bool {
	if _, ok := d.Redirect[id]; ok {
		return false
	}
	_, ok := d.Aimai[id]
	return !ok
}

// Aliases returns the sorted surface forms of a title.
func (d *Dictionary) Aliases(title string) []string {
	s, ok := d.Alias[title]
	if !ok {
		return nil
	}
	return s.Sorted()
}

// Merge adds all entries of other to d.
func (d *Dictionary) Merge(other *Dictionary) {
	for k, v := range other.Alias {
		for a := range v {
			addTo(d.Alias, k, a)
		}
	}
	mergeIDs(d.Redirect, other.Redirect)
	mergeIDs(d.Aimai, other.Aimai)
}

func mergeIDs(dst, src map[int]Set) {
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = make(Set, len(v))
		}
		for t := range v {
			dst[k].Add(t)
		}
	}
}

// addTo unions val into the set of key, creating the set if needed.
// An empty val creates the key only.
func addTo[K comparable](m map[K]Set, key K, val string) {
	s, ok := m[key]
	if !ok {
		s = make(Set)
		m[key] = s
	}
	if val != "" {
		s.Add(val)
	}
}
