// Package geocatalog loads the fixed catalogue of Indian states, union
// territories, and their districts used to enumerate the query space.
// Region/language/district seed data is loaded once at startup and
// sorted for deterministic iteration.
package geocatalog

import (
	"fmt"
	"sort"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// Catalogue is the immutable, sorted set of regions loaded at startup.
type Catalogue struct {
	regions    []types.Region
	bySlug     map[string]types.Region
	states     []types.Region
	uts        []types.Region
}

// Load builds a Catalogue from seed, validating every region and
// sorting states/UTs and their districts for stable iteration order.
// seed is expected to come from the embedded default seed data in
// seed.go, but Load accepts any slice so tests and future overrides
// (e.g. a custom region list via config) can supply their own.
func Load(seed []types.Region) (*Catalogue, error) {
	c := &Catalogue{
		bySlug: make(map[string]types.Region, len(seed)),
	}

	for _, r := range seed {
		sorted := r
		sorted.Languages = append([]string(nil), r.Languages...)
		sort.Strings(sorted.Languages)
		sorted.Districts = append([]types.DistrictName(nil), r.Districts...)
		sort.Slice(sorted.Districts, func(i, j int) bool { return sorted.Districts[i] < sorted.Districts[j] })

		if err := sorted.Validate(); err != nil {
			return nil, fmt.Errorf("region %q: %w", r.Slug, err)
		}
		if _, dup := c.bySlug[sorted.Slug]; dup {
			return nil, fmt.Errorf("duplicate region slug %q", sorted.Slug)
		}

		c.bySlug[sorted.Slug] = sorted
		c.regions = append(c.regions, sorted)
		switch sorted.Kind {
		case types.RegionKindState:
			c.states = append(c.states, sorted)
		case types.RegionKindUT:
			c.uts = append(c.uts, sorted)
		default:
			return nil, fmt.Errorf("region %q: unknown kind %q", sorted.Slug, sorted.Kind)
		}
	}

	sort.Slice(c.regions, func(i, j int) bool { return c.regions[i].Slug < c.regions[j].Slug })
	sort.Slice(c.states, func(i, j int) bool { return c.states[i].Slug < c.states[j].Slug })
	sort.Slice(c.uts, func(i, j int) bool { return c.uts[i].Slug < c.uts[j].Slug })

	return c, nil
}

// Regions returns every region (states and UTs) in slug-sorted order.
func (c *Catalogue) Regions() []types.Region { return append([]types.Region(nil), c.regions...) }

// States returns only state-kind regions, slug-sorted.
func (c *Catalogue) States() []types.Region { return append([]types.Region(nil), c.states...) }

// UTs returns only union-territory-kind regions, slug-sorted.
func (c *Catalogue) UTs() []types.Region { return append([]types.Region(nil), c.uts...) }

// BySlug looks up a single region.
func (c *Catalogue) BySlug(slug string) (types.Region, bool) {
	r, ok := c.bySlug[slug]
	return r, ok
}

// Len returns the total number of regions in the catalogue.
func (c *Catalogue) Len() int { return len(c.regions) }
