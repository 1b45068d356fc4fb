package llm

import (
	"fmt"
	"net/http"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter ranks apps by these headers; they are optional.
const (
	openRouterReferer = "https://github.com/abhisek/lingocalm"
	openRouterTitle   = "LingoCalm"
)

// OpenRouterProvider reaches many vendors' models through OpenRouter's
// OpenAI-compatible API.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates an OpenRouter provider. Model IDs are
// passed through unchanged, e.g. "google/gemini-2.0-flash-exp".
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: orDefault(cfg.BaseURL, defaultOpenRouterBaseURL),
	}, openRouterHeaders())
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

func openRouterHeaders() http.Header {
	h := http.Header{}
	h.Set("HTTP-Referer", openRouterReferer)
	h.Set("X-Title", openRouterTitle)
	return h
}

// headerTransport adds fixed headers to each request.
type headerTransport struct {
	headers http.Header
	next    http.RoundTripper
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return t.next.RoundTrip(req)
}
