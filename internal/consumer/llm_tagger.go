package consumer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// LLMProvider selects which backend LLMTagger talks to.
type LLMProvider string

const (
	LLMProviderOllama LLMProvider = "ollama"
	LLMProviderOpenAI LLMProvider = "openai"
)

// LLMTaggerConfig configures the relevance-tagging LLM call.
type LLMTaggerConfig struct {
	Provider LLMProvider
	Endpoint string
	Model    string
	APIKey   string
}

// LLMTagger implements RelevanceTagger by asking an LLM whether an
// article is heat-relevant and, if so, which district it concerns.
type LLMTagger struct {
	cfg    LLMTaggerConfig
	client *http.Client
}

func NewLLMTagger(cfg LLMTaggerConfig) *LLMTagger {
	return &LLMTagger{cfg: cfg, client: &http.Client{Timeout: 60 * time.Second}}
}

// Tag asks the configured LLM to classify article as heat-relevant and
// extract its district, parsing a constrained "RELEVANT|district" or
// "NOT_RELEVANT" response format.
func (t *LLMTagger) Tag(ctx context.Context, article types.ArticleRef) (bool, string, error) {
	prompt := fmt.Sprintf(
		"Article title: %q\nSource: %s\nIs this article about a heat-related event in India (heatwave, heatstroke, drought, power cuts from heat, crop damage, or government heat response)? "+
			"Reply with exactly \"RELEVANT|<district name>\" if yes, or \"NOT_RELEVANT\" if no.",
		article.Title, article.Source,
	)

	raw, err := t.generate(ctx, prompt)
	if err != nil {
		return false, "", fmt.Errorf("llm tagger: %w", err)
	}

	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "RELEVANT|") {
		district := strings.TrimSpace(strings.TrimPrefix(raw, "RELEVANT|"))
		return true, district, nil
	}
	return false, "", nil
}

func (t *LLMTagger) generate(ctx context.Context, prompt string) (string, error) {
	switch t.cfg.Provider {
	case LLMProviderOllama:
		return t.generateOllama(ctx, prompt)
	case LLMProviderOpenAI:
		return t.generateOpenAI(ctx, prompt)
	default:
		return "", fmt.Errorf("unsupported llm provider: %s", t.cfg.Provider)
	}
}

func (t *LLMTagger) generateOllama(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":  t.cfg.Model,
		"prompt": prompt,
		"stream": false,
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.Endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	return result.Response, nil
}

func (t *LLMTagger) generateOpenAI(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": t.cfg.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.Endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.cfg.APIKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai response had no choices")
	}
	return result.Choices[0].Message.Content, nil
}
