// Package termdict loads the per-language, per-category heat-term
// dictionary the Query Generator draws from. Grounded on the same
// embedded-seed-data pattern as internal/geocatalog, applied to term
// lists instead of geography.
package termdict

import (
	"fmt"
	"sort"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// key identifies one (language, category) term list.
type key struct {
	lang string
	cat  types.TermCategory
}

// Dictionary is the immutable, sorted term lookup loaded once at
// startup. Terms within each list are sorted by register priority
// (formal first) so truncation-by-budget in the Query Generator drops
// the least formal terms first.
type Dictionary struct {
	terms map[key][]types.HeatTerm
}

// Entry is one seed row: a language, a category, and its term list.
type Entry struct {
	Language string
	Category types.TermCategory
	Terms    []types.HeatTerm
}

// Load builds a Dictionary from seed, sorting each term list by
// register priority and rejecting duplicate (language, category) rows.
func Load(seed []Entry) (*Dictionary, error) {
	d := &Dictionary{terms: make(map[key][]types.HeatTerm, len(seed))}

	for _, e := range seed {
		if !types.SupportedLanguages[e.Language] {
			return nil, fmt.Errorf("termdict: language %q is not supported", e.Language)
		}
		if len(e.Terms) == 0 {
			return nil, fmt.Errorf("termdict: %s/%s has no terms", e.Language, e.Category)
		}
		k := key{lang: e.Language, cat: e.Category}
		if _, dup := d.terms[k]; dup {
			return nil, fmt.Errorf("termdict: duplicate entry for %s/%s", e.Language, e.Category)
		}

		terms := append([]types.HeatTerm(nil), e.Terms...)
		sort.SliceStable(terms, func(i, j int) bool {
			return types.RegisterPriority(terms[i].Register) < types.RegisterPriority(terms[j].Register)
		})
		d.terms[k] = terms
	}

	return d, nil
}

// Lookup returns the term list for (lang, category), or nil if absent.
// Callers must not mutate the returned slice.
func (d *Dictionary) Lookup(lang string, category types.TermCategory) []types.HeatTerm {
	return d.terms[key{lang: lang, cat: category}]
}

// Languages returns the set of languages that have at least one
// category populated.
func (d *Dictionary) Languages() []string {
	seen := make(map[string]struct{})
	for k := range d.terms {
		seen[k.lang] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for lang := range seen {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}
