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

const googleCSEEndpoint = "https://www.googleapis.com/customsearch/v1"

// GoogleCSE adapts Google Programmable Search (Custom Search JSON API)
// to the Provider interface. Supports all fourteen languages via the
// `lr` (language restrict) parameter.
type GoogleCSE struct {
	apiKey         string
	searchEngineID string
	http           *httpClient
}

// NewGoogleCSE builds a Google CSE adapter. timeout bounds a single
// Search round-trip.
func NewGoogleCSE(apiKey, searchEngineID string, timeoutSeconds int) *GoogleCSE {
	return &GoogleCSE{
		apiKey:         apiKey,
		searchEngineID: searchEngineID,
		http:           newHTTPClient(time.Duration(secondsOrDefault(timeoutSeconds, 20)) * time.Second),
	}
}

func (g *GoogleCSE) Name() string { return "google" }

func (g *GoogleCSE) SupportsLanguage(lang string) bool {
	_, ok := types.SupportedLanguages[lang]
	return ok
}

type googleSearchResponse struct {
	Items []struct {
		Title       string `json:"title"`
		HTMLTitle   string `json:"htmlTitle"`
		Link        string `json:"link"`
		DisplayLink string `json:"displayLink"`
		Snippet     string `json:"snippet"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search queries the Custom Search JSON API. Google CSE returns at most
// 10 results per call and does not expose a publish date, so
// ArticleRef.PublishedAt is left empty.
func (g *GoogleCSE) Search(ctx context.Context, q types.Query) ([]types.ArticleRef, error) {
	if !g.SupportsLanguage(q.Language) {
		return nil, types.ErrLanguageUnsupported
	}

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.searchEngineID)
	params.Set("q", q.QueryString)
	params.Set("lr", "lang_"+q.Language)
	params.Set("num", "10")

	req, err := http.NewRequest(http.MethodGet, googleCSEEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &types.ProviderError{Provider: g.Name(), Err: err, Retryable: false}
	}

	body, err := g.http.do(ctx, req, g.Name())
	if err != nil {
		return nil, err
	}

	var parsed googleSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &types.ProviderError{Provider: g.Name(), Err: fmt.Errorf("decode response: %w", err), Retryable: false}
	}
	if parsed.Error != nil {
		retryable := parsed.Error.Code == http.StatusTooManyRequests || parsed.Error.Code >= 500
		return nil, &types.ProviderError{
			Provider:   g.Name(),
			StatusCode: parsed.Error.Code,
			Err:        fmt.Errorf("google cse error: %s", parsed.Error.Message),
			Retryable:  retryable,
		}
	}

	refs := make([]types.ArticleRef, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		refs = append(refs, types.ArticleRef{
			Title:      sanitizeSnippet(item.HTMLTitle),
			URL:        item.Link,
			Source:     item.DisplayLink,
			Language:   q.Language,
			RegionSlug: q.RegionSlug,
			SearchTerm: q.QueryString,
		})
	}
	return refs, nil
}

func secondsOrDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
