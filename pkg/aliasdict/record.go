package aliasdict

import "slices"

// Record is the serializable form of a Dictionary. Sets are stored as
// sorted slices.
type Record struct {
	Alias    map[string][]string `json:"alias"`
	Redirect map[int][]string    `json:"redirect"`
	Aimai    map[int][]string    `json:"aimai"`
}

// Record converts the dictionary to its serializable form.
func (d *Dictionary) Record() Record {
	res := Record{
		Alias:    make(map[string][]string, len(d.Alias)),
		Redirect: make(map[int][]string, len(d.Redirect)),
		Aimai:    make(map[int][]string, len(d.Aimai)),
	}
	for k, v := range d.Alias {
		res.Alias[k] = v.Sorted()
	}
	for k, v := range d.Redirect {
		res.Redirect[k] = v.Sorted()
	}
	for k, v := range d.Aimai {
		res.Aimai[k] = v.Sorted()
	}
	return res
}

// FromRecord restores a Dictionary from its serializable form.
func FromRecord(r Record) *Dictionary {
	res := New()
	for k, v := range r.Alias {
		for _, a := range v {
			res.AddAlias(k, a)
		}
	}
	for k, v := range r.Redirect {
		res.AddRedirect(k, "")
		for _, t := range v {
			res.AddRedirect(k, t)
		}
	}
	for k, v := range r.Aimai {
		res.AddAimai(k, "")
		for _, t := range v {
			res.AddAimai(k, t)
		}
	}
	return res
}

// Titles returns the keys of the alias map in lexical order.
func (d *Dictionary) Titles() []string {
	res := make([]string, 0, len(d.Alias))
	for k := range d.Alias {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// IDs returns sorted keys of an ID-keyed map of the dictionary.
func IDs(m map[int]Set) []int {
	res := make([]int, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}
