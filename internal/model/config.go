package model

import "fmt"

// Config is the full greensynth configuration. Field names double as viper
// keys (e.g. "llm.model") and as YAML keys in ~/.greensynth/config.yaml.
type Config struct {
	LLM        LLMConfig        `mapstructure:"llm" yaml:"llm"`
	Generation GenerationConfig `mapstructure:"generation" yaml:"generation"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	History    HistoryConfig    `mapstructure:"history" yaml:"history"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}

// LLMConfig configures the chat-completion endpoint.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider" yaml:"provider"`
	Model       string  `mapstructure:"model" yaml:"model"`
	APIKey      string  `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL     string  `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Temperature float32 `mapstructure:"temperature" yaml:"temperature"` // (0, 2]; the client omits 0 from requests
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Timeout     int     `mapstructure:"timeout" yaml:"timeout"` // seconds
	HTTPProxy   string  `mapstructure:"http_proxy" yaml:"http_proxy,omitempty"`
	HTTPSProxy  string  `mapstructure:"https_proxy" yaml:"https_proxy,omitempty"`
}

// GenerationConfig holds the default batch request.
type GenerationConfig struct {
	Count          int    `mapstructure:"count" yaml:"count"`
	Industry       string `mapstructure:"industry" yaml:"industry"`
	Classification string `mapstructure:"classification" yaml:"classification"`
	SourceType     string `mapstructure:"source_type" yaml:"source_type"`
}

// OutputConfig controls export naming and console reporting.
type OutputConfig struct {
	Dir        string `mapstructure:"dir" yaml:"dir"`
	Prefix     string `mapstructure:"prefix" yaml:"prefix"`
	ShowClaims bool   `mapstructure:"show_claims" yaml:"show_claims"`
	MaxErrors  int    `mapstructure:"max_errors" yaml:"max_errors"` // violations printed in the summary
}

// HistoryConfig controls skipping snippets that earlier exports already hold.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Pattern string `mapstructure:"pattern" yaml:"pattern"` // glob; empty means <output.dir>/<output.prefix>_*.jsonl
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // console or json
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4-turbo-preview",
			Temperature: 0.8, // favour diverse examples
			Timeout:     120,
		},
		Generation: GenerationConfig{
			Count:          10,
			Industry:       string(IndustryFashion),
			Classification: string(Greenwashing),
			SourceType:     string(SourceAnnualReport),
		},
		Output: OutputConfig{
			Dir:        ".",
			Prefix:     "greenwashing_data",
			ShowClaims: true,
			MaxErrors:  5,
		},
		History: HistoryConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate rejects settings the OpenAI client cannot express. A zero
// temperature would be dropped from the request and the API default used
// in its place.
func (c *Config) Validate() error {
	if c.LLM.Temperature <= 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be in (0, 2], got %v", c.LLM.Temperature)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative, got %d", c.LLM.Timeout)
	}
	return nil
}
