package llm

import (
	"context"
	"os"

	"github.com/ppiankov/greensynth/internal/model"
)

// Provider performs a single chat-completion call. Implementations never retry.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate sends the instructions and returns the raw model text
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Ping checks that the endpoint is reachable and the credential accepted
	Ping(ctx context.Context) error
}

// GenerateRequest contains the input for one model invocation
type GenerateRequest struct {
	// System is the static instruction (persona + taxonomy)
	System string

	// User is the per-batch instruction
	User string

	// Model overrides the configured model when set
	Model string

	// Temperature overrides the configured sampling temperature when non-zero
	Temperature float32

	// JSONObject asks the API to return a single JSON object
	JSONObject bool
}

// GenerateResponse contains the raw model output
type GenerateResponse struct {
	// Content is the untouched text of the first choice
	Content string

	// Model is the model that generated the response
	Model string

	// FinishReason as reported by the API
	FinishReason string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: only "openai" is supported
	Provider string

	// Model name
	Model string

	// APIKey is the bearer credential
	APIKey string

	// BaseURL for OpenAI-compatible gateways
	BaseURL string

	// Temperature used when the request does not set one
	Temperature float32

	// MaxTokens for response generation (0 leaves it to the API)
	MaxTokens int

	// Timeout for API requests
	Timeout int // seconds

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// Environment variables consulted for the credential, in order.
const (
	EnvAPIKey        = "OPENAI_API_KEY"
	EnvAPIKeyStaging = "OPENAI_API_KEY_STAGING"
)

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return ConfigFromModel(model.DefaultConfig().LLM)
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:    c.Provider,
		Model:       c.Model,
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Timeout:     c.Timeout,
		HTTPProxy:   c.HTTPProxy,
		HTTPSProxy:  c.HTTPSProxy,
	}
}

// ResolveAPIKey fills in the credential from the environment when the
// configuration does not carry one. It fails before any network activity.
func ResolveAPIKey(config Config) (Config, error) {
	if config.APIKey != "" {
		return config, nil
	}
	for _, env := range []string{EnvAPIKey, EnvAPIKeyStaging} {
		if v := os.Getenv(env); v != "" {
			config.APIKey = v
			return config, nil
		}
	}
	return config, &ConfigurationError{
		Field:  "api_key",
		Reason: "OpenAI API key required. Set " + EnvAPIKey + " or pass --api-key",
	}
}
