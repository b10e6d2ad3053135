// Package types defines the immutable value types that flow through the
// query-orchestration engine: geography, terms, queries, results, and the
// per-provider runtime state the scheduler owns.
package types

import (
	"fmt"

	"golang.org/x/text/language"
)

// RegionKind distinguishes a full state from a union territory.
type RegionKind string

const (
	RegionKindState RegionKind = "state"
	RegionKindUT    RegionKind = "ut"
)

// DistrictName is a district identifier, unique within its Region.
type DistrictName string

// Region is an immutable geography record: a state or union territory,
// its supported languages, and its districts. Loaded once at startup from
// the geo catalogue and never mutated.
type Region struct {
	Slug        string
	DisplayName string
	Kind        RegionKind
	Languages   []string // ordered, BCP-47 codes, subset of SupportedLanguages
	Districts   []DistrictName
}

// Validate checks the Region invariants from the data model: Languages is
// non-empty and every code is a valid BCP-47 tag drawn from the 14
// supported codes, and district names are unique within the region.
func (r Region) Validate() error {
	if r.Slug == "" {
		return fmt.Errorf("region: empty slug")
	}
	if len(r.Languages) == 0 {
		return fmt.Errorf("region %s: languages must be non-empty", r.Slug)
	}
	seenLang := make(map[string]struct{}, len(r.Languages))
	for _, code := range r.Languages {
		if _, err := language.Parse(code); err != nil {
			return fmt.Errorf("region %s: invalid BCP-47 language %q: %w", r.Slug, code, err)
		}
		if !SupportedLanguages[code] {
			return fmt.Errorf("region %s: language %q is not in the supported set", r.Slug, code)
		}
		if _, dup := seenLang[code]; dup {
			return fmt.Errorf("region %s: duplicate language %q", r.Slug, code)
		}
		seenLang[code] = struct{}{}
	}
	seenDistrict := make(map[DistrictName]struct{}, len(r.Districts))
	for _, d := range r.Districts {
		if _, dup := seenDistrict[d]; dup {
			return fmt.Errorf("region %s: duplicate district %q", r.Slug, d)
		}
		seenDistrict[d] = struct{}{}
	}
	return nil
}

// SupportedLanguages is the closed set of 14 BCP-47 codes the pipeline
// covers. Kept as a map for O(1) membership tests at query-generation
// time.
var SupportedLanguages = map[string]bool{
	"hi": true, // Hindi
	"en": true, // English
	"bn": true, // Bengali
	"ta": true, // Tamil
	"te": true, // Telugu
	"mr": true, // Marathi
	"gu": true, // Gujarati
	"kn": true, // Kannada
	"ml": true, // Malayalam
	"pa": true, // Punjabi
	"or": true, // Odia
	"as": true, // Assamese
	"ur": true, // Urdu
	"mni": true, // Manipuri
}

// GNewsSupportedLanguages is the 8-code subset gnews.io accepts, used by
// the Query Generator to decide whether to emit a gnews query at all.
var GNewsSupportedLanguages = map[string]bool{
	"hi": true,
	"en": true,
	"bn": true,
	"ta": true,
	"te": true,
	"mr": true,
	"gu": true,
	"ml": true,
}
