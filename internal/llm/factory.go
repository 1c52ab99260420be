package llm

import (
	"strings"
)

// NewProvider creates the configured provider. Only OpenAI-compatible
// endpoints are supported; an empty name selects openai.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai", "":
		resolved, err := ResolveAPIKey(config)
		if err != nil {
			return nil, err
		}
		return NewOpenAIProvider(resolved)

	default:
		return nil, &ConfigurationError{
			Field:  "provider",
			Reason: "unknown LLM provider " + config.Provider + " (supported: openai)",
		}
	}
}
