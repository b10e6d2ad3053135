package termdict

import "testing"
import "github.com/AIDMI-DataHub/heatscan/internal/types"

func TestLoadDefaultSeedValidates(t *testing.T) {
	d, err := Load(DefaultSeed())
	if err != nil {
		t.Fatalf("default seed should load cleanly: %v", err)
	}
	terms := d.Lookup("en", types.CategoryHeatwave)
	if len(terms) == 0 {
		t.Fatal("expected english heatwave terms")
	}
}

func TestLookupSortedByRegisterPriority(t *testing.T) {
	d, err := Load(DefaultSeed())
	if err != nil {
		t.Fatal(err)
	}
	terms := d.Lookup("en", types.CategoryTemperature)
	for i := 1; i < len(terms); i++ {
		if types.RegisterPriority(terms[i-1].Register) > types.RegisterPriority(terms[i].Register) {
			t.Fatalf("terms not sorted by register priority at index %d", i)
		}
	}
}

func TestLookupMissingReturnsNil(t *testing.T) {
	d, err := Load(DefaultSeed())
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Lookup("zz", types.CategoryHeatwave); got != nil {
		t.Fatalf("expected nil for unknown language, got %v", got)
	}
}

func TestLoadRejectsUnsupportedLanguage(t *testing.T) {
	_, err := Load([]Entry{{Language: "zz", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{{Text: "x"}}}})
	if err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

func TestLoadRejectsDuplicateEntry(t *testing.T) {
	seed := []Entry{
		{Language: "en", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{{Text: "a"}}},
		{Language: "en", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{{Text: "b"}}},
	}
	if _, err := Load(seed); err == nil {
		t.Fatal("expected error for duplicate (language, category) entry")
	}
}
