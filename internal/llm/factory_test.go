package llm

import (
	"errors"
	"testing"

	"github.com/ppiankov/greensynth/internal/model"
)

func TestNewProvider_UnknownProvider(t *testing.T) {
	_, err := NewProvider(Config{Provider: "anthropic", APIKey: "k"})
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
	if ce.Field != "provider" {
		t.Errorf("Expected field provider, got %s", ce.Field)
	}
}

func TestNewProvider_MissingCredential(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIKeyStaging, "")

	_, err := NewProvider(Config{Provider: "openai"})
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
}

func TestNewProvider_EmptyNameMeansOpenAI(t *testing.T) {
	p, err := NewProvider(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Expected openai provider, got %s", p.Name())
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIKeyStaging, "staging-key")

	cfg, err := ResolveAPIKey(Config{})
	if err != nil {
		t.Fatalf("Expected staging key to be used, got %v", err)
	}
	if cfg.APIKey != "staging-key" {
		t.Errorf("Expected staging-key, got %s", cfg.APIKey)
	}

	t.Setenv(EnvAPIKey, "primary-key")
	cfg, err = ResolveAPIKey(Config{})
	if err != nil || cfg.APIKey != "primary-key" {
		t.Errorf("Expected primary-key, got %q (%v)", cfg.APIKey, err)
	}

	cfg, err = ResolveAPIKey(Config{APIKey: "explicit"})
	if err != nil || cfg.APIKey != "explicit" {
		t.Errorf("Expected explicit key to win, got %q (%v)", cfg.APIKey, err)
	}
}

func TestConfigFromModel(t *testing.T) {
	mc := model.DefaultConfig().LLM
	mc.BaseURL = "http://localhost:8080/v1"

	cfg := ConfigFromModel(mc)
	if cfg.Model != "gpt-4-turbo-preview" {
		t.Errorf("Expected default model, got %s", cfg.Model)
	}
	if cfg.Temperature != 0.8 {
		t.Errorf("Expected temperature 0.8, got %v", cfg.Temperature)
	}
	if cfg.BaseURL != mc.BaseURL {
		t.Errorf("Expected base URL to carry over, got %s", cfg.BaseURL)
	}
}
