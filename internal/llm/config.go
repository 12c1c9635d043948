package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures a provider. An empty Provider means
// "discover from well-known API key variables".
type Config struct {
	Provider string `yaml:"provider" env:"HANZIDRILL_LLM_PROVIDER"`

	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"HANZIDRILL_GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"HANZIDRILL_GEMINI_MODEL" env-default:"gemini-flash"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" env:"HANZIDRILL_OPENAI_API_KEY"`
	Model   string `yaml:"model" env:"HANZIDRILL_OPENAI_MODEL" env-default:"gpt-4o-mini"`
	BaseURL string `yaml:"base_url" env:"HANZIDRILL_OPENAI_BASE_URL"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key" env:"HANZIDRILL_ANTHROPIC_API_KEY"`
	Model  string `yaml:"model" env:"HANZIDRILL_ANTHROPIC_MODEL" env-default:"claude-haiku"`
}

type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key" env:"HANZIDRILL_OPENROUTER_API_KEY"`
	Model   string `yaml:"model" env:"HANZIDRILL_OPENROUTER_MODEL" env-default:"google/gemini-2.0-flash-001"`
	BaseURL string `yaml:"base_url" env:"HANZIDRILL_OPENROUTER_BASE_URL" env-default:"https://openrouter.ai/api/v1"`
}

// RetryConfig controls backoff between attempts.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" env:"HANZIDRILL_LLM_MAX_ATTEMPTS" env-default:"2"`
	InitialWait time.Duration `yaml:"initial_wait" env-default:"500ms"`
	MaxWait     time.Duration `yaml:"max_wait" env-default:"4s"`
	Multiplier  float64       `yaml:"multiplier" env-default:"2"`
}

// DefaultConfig mirrors the env-default tags for callers that do not go
// through the config loader.
func DefaultConfig() Config {
	return Config{
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenRouter: OpenRouterConfig{
			Model:   "google/gemini-2.0-flash-001",
			BaseURL: defaultOpenRouterBaseURL,
		},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     4 * time.Second,
			Multiplier:  2,
		},
	}
}

// discoveryOrder lists the vendor key variables probed by Discover.
var discoveryOrder = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// Discover fills an empty Provider from the first vendor API key found in
// the environment. It reports false when nothing could be selected.
func (c *Config) Discover() bool {
	if c.Provider != "" {
		return true
	}
	for _, d := range discoveryOrder {
		key := os.Getenv(d.env)
		if key == "" {
			continue
		}
		c.Provider = d.provider
		c.setKey(key)
		return true
	}
	return false
}

func (c *Config) setKey(key string) {
	switch c.Provider {
	case ProviderGemini:
		c.Gemini.APIKey = key
	case ProviderOpenAI:
		c.OpenAI.APIKey = key
	case ProviderAnthropic:
		c.Anthropic.APIKey = key
	case ProviderOpenRouter:
		c.OpenRouter.APIKey = key
	}
}

// Validate checks that the selected provider has what it needs.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "", ProviderMock:
		return nil
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	default:
		return fmt.Errorf("unknown llm provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("llm provider %s: api key is not set", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("llm retry: max_attempts must be at least 1")
	}
	return nil
}
