package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string `yaml:"provider"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 120s.
	Timeout time.Duration `yaml:"timeout"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`       // Default: "gpt-4o-mini"
	ImageModel string `yaml:"image_model"` // Default: "dall-e-3"
	BaseURL    string `yaml:"base_url"`    // Optional. Override for OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`       // Default: "gemini-flash"
	ImageModel string `yaml:"image_model"` // Default: "gemini-2.5-flash-image"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`     // Default: "google/gemini-2.5-flash"
	BaseURL  string `yaml:"base_url"`  // Default: "https://openrouter.ai/api/v1"
	AppTitle string `yaml:"app_title"` // Sent as X-Title. Default: "LessonCraft"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model:      "gpt-4o-mini",
			ImageModel: "dall-e-3",
		},
		Gemini: GeminiConfig{
			Model:      "gemini-flash",
			ImageModel: "gemini-2.5-flash-image",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 120 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv(os.Getenv)
	return cfg
}

// ApplyEnv overrides c with LESSONCRAFT_* variables read through getenv.
// Unset variables leave the current values in place.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&c.Provider, "LESSONCRAFT_LLM_PROVIDER")

	set(&c.Anthropic.APIKey, "LESSONCRAFT_ANTHROPIC_API_KEY")
	set(&c.Anthropic.Model, "LESSONCRAFT_ANTHROPIC_MODEL")

	set(&c.OpenAI.APIKey, "LESSONCRAFT_OPENAI_API_KEY")
	set(&c.OpenAI.Model, "LESSONCRAFT_OPENAI_MODEL")
	set(&c.OpenAI.ImageModel, "LESSONCRAFT_OPENAI_IMAGE_MODEL")
	set(&c.OpenAI.BaseURL, "LESSONCRAFT_OPENAI_BASE_URL")

	set(&c.Gemini.APIKey, "LESSONCRAFT_GEMINI_API_KEY")
	set(&c.Gemini.Model, "LESSONCRAFT_GEMINI_MODEL")
	set(&c.Gemini.ImageModel, "LESSONCRAFT_GEMINI_IMAGE_MODEL")

	set(&c.OpenRouter.APIKey, "LESSONCRAFT_OPENROUTER_API_KEY")
	set(&c.OpenRouter.Model, "LESSONCRAFT_OPENROUTER_MODEL")
	set(&c.OpenRouter.AppTitle, "LESSONCRAFT_OPENROUTER_APP_TITLE")

	if v := getenv("LESSONCRAFT_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
}

// DiscoverConfig checks standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. API_KEY is accepted as a Gemini key.
// Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	if Discover(&cfg, os.Getenv) {
		return cfg, true
	}
	return Config{}, false
}

// Discover fills the provider and key of cfg from the first standard API
// key variable that is set. It reports whether one was found.
func Discover(cfg *Config, getenv func(string) string) bool {
	for _, key := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if k := getenv(key); k != "" {
			cfg.Provider = "gemini"
			cfg.Gemini.APIKey = k
			return true
		}
	}
	if k := getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return true
	}
	if k := getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return true
	}
	if k := getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return true
	}
	return false
}

// HasKey reports whether the selected provider has credentials.
func (c Config) HasKey() bool {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.APIKey != ""
	case "openai":
		return c.OpenAI.APIKey != ""
	case "gemini":
		return c.Gemini.APIKey != ""
	case "openrouter":
		return c.OpenRouter.APIKey != ""
	case "mock":
		return true
	}
	return false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("LESSONCRAFT_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("LESSONCRAFT_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY (or API_KEY) is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("LESSONCRAFT_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
