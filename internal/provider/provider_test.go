package provider

import (
	"testing"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

func TestRegistryPreservesFixedOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(types.ProviderGNews, &GNews{})
	r.Register(types.ProviderGoogle, &GoogleCSE{})
	r.Register(types.ProviderNewsdata, &NewsData{})

	ordered := r.Ordered()
	if len(ordered) != 3 {
		t.Fatalf("expected 3 providers, got %d", len(ordered))
	}
	if ordered[0].Name() != "google" || ordered[1].Name() != "newsdata" || ordered[2].Name() != "gnews" {
		t.Fatalf("expected google,newsdata,gnews order, got %s,%s,%s", ordered[0].Name(), ordered[1].Name(), ordered[2].Name())
	}
}

func TestRegistryGetMissing(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get(types.ProviderGoogle); ok {
		t.Fatal("expected no provider registered")
	}
}

func TestSanitizeSnippetStripsMarkup(t *testing.T) {
	got := sanitizeSnippet("Rajasthan <b>heatwave</b> kills dozens")
	want := "Rajasthan heatwave kills dozens"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSanitizeSnippetPlainTextUnchanged(t *testing.T) {
	got := sanitizeSnippet("no markup here")
	if got != "no markup here" {
		t.Fatalf("got %q", got)
	}
}
