package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterTitle   = "LessonCraft"
	openRouterReferer        = "https://github.com/abhisek/lessoncraft"
)

// openrouterModels maps tiers to OpenRouter model slugs. Any other value is
// passed through as a slug.
var openrouterModels = map[string]string{
	TierFast: "google/gemini-2.5-flash",
	TierPro:  "google/gemini-2.5-pro",
}

// OpenRouterProvider is an OpenAIProvider pointed at OpenRouter's
// OpenAI-compatible API. Requests carry the app attribution headers
// OpenRouter uses to group traffic by application.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	title := cfg.AppTitle
	if title == "" {
		title = defaultOpenRouterTitle
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   resolveModel(cfg.Model, openrouterModels),
		BaseURL: baseURL,
	}, openrouterModels, func(c *openai.ClientConfig) {
		c.HTTPClient = &http.Client{Transport: attributionTransport{
			base:  http.DefaultTransport,
			title: title,
		}}
	})
	if err != nil {
		return nil, err
	}

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

type attributionTransport struct {
	base  http.RoundTripper
	title string
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", t.title)
	return t.base.RoundTrip(req)
}
