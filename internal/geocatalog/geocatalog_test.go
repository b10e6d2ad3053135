package geocatalog

import "testing"

func TestLoadDefaultSeedValidates(t *testing.T) {
	c, err := Load(DefaultSeed())
	if err != nil {
		t.Fatalf("default seed should load cleanly: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("expected non-empty catalogue")
	}
}

func TestRegionsSortedBySlug(t *testing.T) {
	c, err := Load(DefaultSeed())
	if err != nil {
		t.Fatal(err)
	}
	regions := c.Regions()
	for i := 1; i < len(regions); i++ {
		if regions[i-1].Slug > regions[i].Slug {
			t.Fatalf("regions not sorted: %s before %s", regions[i-1].Slug, regions[i].Slug)
		}
	}
}

func TestStatesAndUTsPartitioned(t *testing.T) {
	c, err := Load(DefaultSeed())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.States())+len(c.UTs()) != c.Len() {
		t.Fatal("expected states + uts to equal total region count")
	}
	if _, ok := c.BySlug("delhi"); !ok {
		t.Fatal("expected delhi to be present")
	}
}

func TestLoadRejectsDuplicateSlug(t *testing.T) {
	seed := DefaultSeed()
	seed = append(seed, seed[0])
	if _, err := Load(seed); err == nil {
		t.Fatal("expected error for duplicate slug")
	}
}
