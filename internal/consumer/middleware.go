package consumer

import "github.com/AIDMI-DataHub/heatscan/internal/types"

// MaxArticlesMiddleware truncates every successful result's Articles to
// at most Limit entries. Limit <= 0 disables the cap. Grounded on the
// teacher's FieldFilterMiddleware shape: a single-purpose struct
// implementing Middleware with no external state.
type MaxArticlesMiddleware struct {
	Limit int
}

func (m *MaxArticlesMiddleware) Name() string { return "max_articles" }

func (m *MaxArticlesMiddleware) Process(result *types.QueryResult) (*types.QueryResult, error) {
	if m.Limit <= 0 || len(result.Articles) <= m.Limit {
		return result, nil
	}
	result.Articles = result.Articles[:m.Limit]
	return result, nil
}

// DropEmptyMiddleware drops OK results that ended up with zero articles
// after upstream filtering, so downstream consumers never see a
// "successful but empty" result.
type DropEmptyMiddleware struct{}

func (DropEmptyMiddleware) Name() string { return "drop_empty" }

func (DropEmptyMiddleware) Process(result *types.QueryResult) (*types.QueryResult, error) {
	if result.Outcome == types.OutcomeOK && len(result.Articles) == 0 {
		return nil, nil
	}
	return result, nil
}

// DedupArticlesMiddleware drops articles sharing a URL with an earlier
// article in the same result.
type DedupArticlesMiddleware struct{}

func (DedupArticlesMiddleware) Name() string { return "dedup_articles" }

func (DedupArticlesMiddleware) Process(result *types.QueryResult) (*types.QueryResult, error) {
	if len(result.Articles) < 2 {
		return result, nil
	}
	seen := make(map[string]struct{}, len(result.Articles))
	out := result.Articles[:0]
	for _, a := range result.Articles {
		if _, dup := seen[a.URL]; dup {
			continue
		}
		seen[a.URL] = struct{}{}
		out = append(out, a)
	}
	result.Articles = out
	return result, nil
}
