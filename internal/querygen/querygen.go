// Package querygen enumerates the query space: state-level sweep
// queries and district-level drill-down queries, per provider, obeying
// each provider's query-length budget and the configured district-batch
// size. Generator output order is kept stable for reproducible
// fingerprints.
package querygen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AIDMI-DataHub/heatscan/internal/termdict"
	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// Limits holds each provider's query-string length budget and
// district-batch size, tunable independently of provider credentials.
type Limits struct {
	GoogleQueryMaxChars   int
	NewsdataQueryMaxChars int
	GNewsQueryMaxChars    int
	GoogleDistrictBatch   int
	NewsdataDistrictBatch int
	GNewsDistrictBatch    int
}

// DefaultLimits returns the published per-provider query-length and
// district-batch defaults.
func DefaultLimits() Limits {
	return Limits{
		GoogleQueryMaxChars:   2048,
		NewsdataQueryMaxChars: 512,
		GNewsQueryMaxChars:    200,
		GoogleDistrictBatch:   30,
		NewsdataDistrictBatch: 35,
		GNewsDistrictBatch:    10,
	}
}

// Generator builds Query values for a region from the term dictionary,
// per the fixed per-provider emission rules.
type Generator struct {
	dict   *termdict.Dictionary
	limits Limits
}

func New(dict *termdict.Dictionary, limits Limits) *Generator {
	return &Generator{dict: dict, limits: limits}
}

// StateLevel emits every state-level query for region and language: one
// Google query per category (term-limited OR-clause), plus one broad
// Newsdata query and one broad GNews query (terms from all categories,
// greedily packed, provider-language-gated).
func (g *Generator) StateLevel(region types.Region, language string) []types.Query {
	var out []types.Query

	for _, cat := range types.AllCategories {
		terms := g.dict.Lookup(language, cat)
		if len(terms) == 0 {
			continue
		}
		catCopy := cat
		qs := buildOrClause(terms, g.limits.GoogleQueryMaxChars-len(region.DisplayName)-3, true)
		qs = fmt.Sprintf("(%s) %s", qs, region.DisplayName)
		out = append(out, types.NewQuery(qs, language, region.Slug, region.DisplayName, types.LevelState, &catCopy, nil, types.ProviderGoogle))
	}

	if qs := g.broadQuery(language, region.DisplayName, g.limits.NewsdataQueryMaxChars); qs != "" {
		out = append(out, types.NewQuery(qs, language, region.Slug, region.DisplayName, types.LevelState, nil, nil, types.ProviderNewsdata))
	}

	if types.GNewsSupportedLanguages[language] {
		if qs := g.broadQuery(language, region.DisplayName, g.limits.GNewsQueryMaxChars); qs != "" {
			out = append(out, types.NewQuery(qs, language, region.Slug, region.DisplayName, types.LevelState, nil, nil, types.ProviderGNews))
		}
	}

	return out
}

// DistrictLevel emits district-batch drill-down queries for the active
// districts of region in language: a broad (all-category) query per
// batch, per eligible provider, batched at each provider's fixed size.
func (g *Generator) DistrictLevel(region types.Region, language string, activeDistricts []types.DistrictName) []types.Query {
	if len(activeDistricts) == 0 {
		return nil
	}
	sorted := append([]types.DistrictName(nil), activeDistricts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var out []types.Query
	out = append(out, g.districtBatches(region, language, sorted, g.limits.GoogleDistrictBatch, g.limits.GoogleQueryMaxChars, types.ProviderGoogle)...)
	out = append(out, g.districtBatches(region, language, sorted, g.limits.NewsdataDistrictBatch, g.limits.NewsdataQueryMaxChars, types.ProviderNewsdata)...)
	if types.GNewsSupportedLanguages[language] {
		out = append(out, g.districtBatches(region, language, sorted, g.limits.GNewsDistrictBatch, g.limits.GNewsQueryMaxChars, types.ProviderGNews)...)
	}
	return out
}

func (g *Generator) districtBatches(region types.Region, language string, districts []types.DistrictName, batchSize, maxChars int, hint types.ProviderHint) []types.Query {
	var out []types.Query
	for start := 0; start < len(districts); start += batchSize {
		end := start + batchSize
		if end > len(districts) {
			end = len(districts)
		}
		batch := districts[start:end]

		qs := g.broadQuery(language, "", maxChars-districtClauseReserve(batch))
		if qs == "" {
			continue
		}
		qs = qs + " " + districtClause(batch)
		out = append(out, types.NewQuery(qs, language, region.Slug, region.DisplayName, types.LevelDistrict, nil, batch, hint))
	}
	return out
}

// broadQuery packs terms from every category into a single OR-clause,
// greedily by register priority, truncating to fit maxChars once
// suffix is reserved for a trailing region or district clause.
func (g *Generator) broadQuery(language, regionSuffix string, maxChars int) string {
	var all []types.HeatTerm
	for _, cat := range types.AllCategories {
		all = append(all, g.dict.Lookup(language, cat)...)
	}
	if len(all) == 0 {
		return ""
	}
	sort.SliceStable(all, func(i, j int) bool {
		return types.RegisterPriority(all[i].Register) < types.RegisterPriority(all[j].Register)
	})

	qs := buildOrClause(all, maxChars-len(regionSuffix)-3, false)
	if qs == "" {
		return ""
	}
	qs = "(" + qs + ")"
	if regionSuffix != "" {
		qs = qs + " " + regionSuffix
	}
	return qs
}

// buildOrClause packs terms (already register-sorted) into an
// " OR "-joined clause, double-quoting multi-word terms. When strictOrder
// is set, packing stops at the first term that doesn't fit, so a
// single-category clause never drops a higher-priority term in favor of
// a later, shorter, lower-priority one. When unset, packing is greedy:
// a term that doesn't fit is skipped and later, shorter terms are still
// tried, maximizing how much of the budget a broad multi-category
// clause fills.
func buildOrClause(terms []types.HeatTerm, maxChars int, strictOrder bool) string {
	if maxChars <= 0 {
		return ""
	}
	var parts []string
	length := 0
	for _, t := range terms {
		piece := t.Text
		if t.MultiWord() {
			piece = `"` + piece + `"`
		}
		addLen := len(piece)
		if len(parts) > 0 {
			addLen += len(" OR ")
		}
		if length+addLen > maxChars {
			if strictOrder {
				break
			}
			continue
		}
		parts = append(parts, piece)
		length += addLen
	}
	return strings.Join(parts, " OR ")
}

// districtClause renders a parenthesized, double-quoted OR-clause of
// district names, e.g. ("Jaipur" OR "Kota").
func districtClause(districts []types.DistrictName) string {
	parts := make([]string, len(districts))
	for i, d := range districts {
		parts[i] = `"` + string(d) + `"`
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func districtClauseReserve(districts []types.DistrictName) int {
	return len(districtClause(districts)) + 1
}
