package types

import "testing"

func TestFingerprintStableAcrossRuns(t *testing.T) {
	cat := CategoryHeatwave
	q1 := NewQuery("(heat) Rajasthan", "hi", "rajasthan", "Rajasthan", LevelState, &cat, nil, ProviderGoogle)
	q2 := NewQuery("(heat wave) Rajasthan", "hi", "rajasthan", "Rajasthan", LevelState, &cat, nil, ProviderGoogle)

	if q1.Fingerprint != q2.Fingerprint {
		t.Fatalf("fingerprint must not depend on query_string: %s != %s", q1.Fingerprint, q2.Fingerprint)
	}
	if len(q1.Fingerprint) != 32 {
		t.Fatalf("expected 32 hex chars (128 bits), got %d", len(q1.Fingerprint))
	}
}

func TestFingerprintDiffersByLevel(t *testing.T) {
	cat := CategoryHeatwave
	state := NewQuery("x", "hi", "rajasthan", "Rajasthan", LevelState, &cat, nil, ProviderGoogle)
	district := NewQuery("x", "hi", "rajasthan", "Rajasthan", LevelDistrict, &cat, []DistrictName{"Jaipur"}, ProviderGoogle)

	if state.Fingerprint == district.Fingerprint {
		t.Fatal("state and district queries must fingerprint differently")
	}
}

func TestFingerprintDistrictBatchOrderInsensitive(t *testing.T) {
	cat := CategoryHeatwave
	a := NewQuery("x", "hi", "rajasthan", "Rajasthan", LevelDistrict, &cat, []DistrictName{"Jaipur", "Kota"}, ProviderGoogle)
	b := NewQuery("x", "hi", "rajasthan", "Rajasthan", LevelDistrict, &cat, []DistrictName{"Kota", "Jaipur"}, ProviderGoogle)

	if a.Fingerprint != b.Fingerprint {
		t.Fatal("district batch fingerprint should be order-insensitive (sorted before hashing)")
	}
}

func TestFingerprintDiffersByProvider(t *testing.T) {
	cat := CategoryHeatwave
	g := NewQuery("x", "hi", "rajasthan", "Rajasthan", LevelState, &cat, nil, ProviderGoogle)
	n := NewQuery("x", "hi", "rajasthan", "Rajasthan", LevelState, &cat, nil, ProviderNewsdata)

	if g.Fingerprint == n.Fingerprint {
		t.Fatal("different providers must fingerprint differently")
	}
}

func TestRegisterPriorityOrder(t *testing.T) {
	if RegisterPriority(RegisterFormal) >= RegisterPriority(RegisterColloquial) {
		t.Error("formal must sort before colloquial")
	}
	if RegisterPriority(RegisterColloquial) >= RegisterPriority(RegisterJournalistic) {
		t.Error("colloquial must sort before journalistic")
	}
	if RegisterPriority(RegisterJournalistic) >= RegisterPriority(RegisterBorrowed) {
		t.Error("journalistic must sort before borrowed")
	}
}

func TestRegionValidate(t *testing.T) {
	r := Region{
		Slug:      "rajasthan",
		Languages: []string{"hi", "en"},
		Districts: []DistrictName{"Jaipur", "Kota"},
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid region, got %v", err)
	}

	bad := Region{Slug: "empty-lang"}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for empty languages")
	}

	dupDistrict := Region{
		Slug:      "dup",
		Languages: []string{"hi"},
		Districts: []DistrictName{"Jaipur", "Jaipur"},
	}
	if err := dupDistrict.Validate(); err == nil {
		t.Fatal("expected error for duplicate district names")
	}
}
