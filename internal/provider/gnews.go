package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

const gnewsEndpoint = "https://gnews.io/api/v4/search"

// GNews adapts gnews.io's /api/v4/search endpoint. Supports only the
// eight languages gnews.io publishes — types.GNewsSupportedLanguages.
type GNews struct {
	apiKey string
	http   *httpClient
}

func NewGNews(apiKey string, timeoutSeconds int) *GNews {
	return &GNews{
		apiKey: apiKey,
		http:   newHTTPClient(time.Duration(secondsOrDefault(timeoutSeconds, 20)) * time.Second),
	}
}

func (g *GNews) Name() string { return "gnews" }

func (g *GNews) SupportsLanguage(lang string) bool {
	_, ok := types.GNewsSupportedLanguages[lang]
	return ok
}

type gnewsResponse struct {
	TotalArticles int `json:"totalArticles"`
	Articles      []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
	Errors []string `json:"errors"`
}

// Search queries gnews.io. Requests for an unsupported language are
// rejected locally before any HTTP call is made.
func (g *GNews) Search(ctx context.Context, q types.Query) ([]types.ArticleRef, error) {
	if !g.SupportsLanguage(q.Language) {
		return nil, types.ErrLanguageUnsupported
	}

	params := url.Values{}
	params.Set("token", g.apiKey)
	params.Set("q", q.QueryString)
	params.Set("lang", q.Language)
	params.Set("country", "in")
	params.Set("max", "10")

	req, err := http.NewRequest(http.MethodGet, gnewsEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &types.ProviderError{Provider: g.Name(), Err: err, Retryable: false}
	}

	body, err := g.http.do(ctx, req, g.Name())
	if err != nil {
		return nil, err
	}

	var parsed gnewsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &types.ProviderError{Provider: g.Name(), Err: fmt.Errorf("decode response: %w", err), Retryable: false}
	}
	if len(parsed.Errors) > 0 {
		return nil, &types.ProviderError{Provider: g.Name(), Err: fmt.Errorf("gnews error: %v", parsed.Errors), Retryable: false}
	}

	refs := make([]types.ArticleRef, 0, len(parsed.Articles))
	for _, item := range parsed.Articles {
		refs = append(refs, types.ArticleRef{
			Title:       sanitizeSnippet(item.Title),
			URL:         item.URL,
			Source:      item.Source.Name,
			PublishedAt: item.PublishedAt,
			Language:    q.Language,
			RegionSlug:  q.RegionSlug,
			SearchTerm:  q.QueryString,
		})
	}
	return refs, nil
}
