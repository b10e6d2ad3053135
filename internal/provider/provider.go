package provider

import (
	"context"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// Provider is the interface every news-source adapter implements. Search
// must classify every failure it returns as a *types.ProviderError (or
// types.ErrLanguageUnsupported) — scheduler callers rely on errors.As to
// decide retry vs. terminal classification, never on string matching.
type Provider interface {
	Name() string
	SupportsLanguage(lang string) bool
	Search(ctx context.Context, q types.Query) ([]types.ArticleRef, error)
}

// Registry holds providers in the fixed iteration order
// google -> newsdata -> gnews, matching types.ProviderOrder. It keeps a
// slice preserving registration order rather than a bare map, because
// iteration order is an externally visible contract here, not an
// implementation detail.
type Registry struct {
	byHint map[types.ProviderHint]Provider
	order  []Provider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{byHint: make(map[types.ProviderHint]Provider)}
}

// Register adds p under hint. Calling Register twice with the same hint
// replaces the earlier entry in place, preserving its position in order.
func (r *Registry) Register(hint types.ProviderHint, p Provider) {
	if _, exists := r.byHint[hint]; !exists {
		r.order = append(r.order, p)
	} else {
		for i, existing := range r.order {
			if existing.Name() == r.byHint[hint].Name() {
				r.order[i] = p
				break
			}
		}
	}
	r.byHint[hint] = p
}

// Get returns the provider registered under hint, if any.
func (r *Registry) Get(hint types.ProviderHint) (Provider, bool) {
	p, ok := r.byHint[hint]
	return p, ok
}

// Ordered returns providers in types.ProviderOrder, skipping any hint
// that has no registered provider.
func (r *Registry) Ordered() []Provider {
	out := make([]Provider, 0, len(types.ProviderOrder))
	for _, hint := range types.ProviderOrder {
		if p, ok := r.byHint[hint]; ok {
			out = append(out, p)
		}
	}
	return out
}
