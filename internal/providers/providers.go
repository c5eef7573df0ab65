package providers

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrUnknownProvider is returned when a requested provider is not registered.
var ErrUnknownProvider = errors.New("unknown provider")

// Config represents the configuration for an LLM completion request
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	Complete(ctx context.Context, config Config) (string, error)
}

// Registry maps provider names to Provider implementations.
type Registry map[string]Provider

// Resolve picks a provider by name, falling back to the STUDYHALL_PROVIDER
// environment variable and then to ollama.
func (r Registry) Resolve(name string) (Provider, string, error) {
	if name == "" {
		name = os.Getenv("STUDYHALL_PROVIDER")
	}
	if name == "" {
		name = "ollama"
	}
	p, ok := r[name]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, name, nil
}

// DefaultModel returns the configured default model for a provider.
func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			return "gpt-4o"
		}
		return model
	case "ollama":
		model := os.Getenv("OLLAMA_MODEL")
		if model == "" {
			return "qwen2.5:14b"
		}
		return model
	case "gemini":
		model := os.Getenv("GEMINI_MODEL")
		if model == "" {
			return "gemini-2.0-flash"
		}
		return model
	default:
		return ""
	}
}
