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

const newsdataEndpoint = "https://newsdata.io/api/1/news"

// NewsData adapts newsdata.io's /api/1/news endpoint. Supports all
// fourteen languages.
type NewsData struct {
	apiKey string
	http   *httpClient
}

func NewNewsData(apiKey string, timeoutSeconds int) *NewsData {
	return &NewsData{
		apiKey: apiKey,
		http:   newHTTPClient(time.Duration(secondsOrDefault(timeoutSeconds, 20)) * time.Second),
	}
}

func (n *NewsData) Name() string { return "newsdata" }

func (n *NewsData) SupportsLanguage(lang string) bool {
	_, ok := types.SupportedLanguages[lang]
	return ok
}

type newsdataResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Title       string   `json:"title"`
		Link        string   `json:"link"`
		SourceID    string   `json:"source_id"`
		PubDate     string   `json:"pubDate"`
		Keywords    []string `json:"keywords"`
		Description string   `json:"description"`
	} `json:"results"`
	Message string `json:"message"`
}

// Search queries newsdata.io. A free-tier API key returns HTTP 200 with
// status "error" and a message body instead of a non-2xx status code for
// quota exhaustion, so that case is classified as a permanent
// ProviderError here rather than relying on the HTTP layer.
func (n *NewsData) Search(ctx context.Context, q types.Query) ([]types.ArticleRef, error) {
	if !n.SupportsLanguage(q.Language) {
		return nil, types.ErrLanguageUnsupported
	}

	params := url.Values{}
	params.Set("apikey", n.apiKey)
	params.Set("q", q.QueryString)
	params.Set("language", q.Language)

	req, err := http.NewRequest(http.MethodGet, newsdataEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &types.ProviderError{Provider: n.Name(), Err: err, Retryable: false}
	}

	body, err := n.http.do(ctx, req, n.Name())
	if err != nil {
		return nil, err
	}

	var parsed newsdataResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &types.ProviderError{Provider: n.Name(), Err: fmt.Errorf("decode response: %w", err), Retryable: false}
	}
	if parsed.Status == "error" {
		return nil, &types.ProviderError{Provider: n.Name(), Err: fmt.Errorf("newsdata error: %s", parsed.Message), Retryable: false}
	}

	refs := make([]types.ArticleRef, 0, len(parsed.Results))
	for _, item := range parsed.Results {
		refs = append(refs, types.ArticleRef{
			Title:       sanitizeSnippet(item.Title),
			URL:         item.Link,
			Source:      item.SourceID,
			PublishedAt: item.PubDate,
			Language:    q.Language,
			RegionSlug:  q.RegionSlug,
			SearchTerm:  q.QueryString,
		})
	}
	return refs, nil
}
