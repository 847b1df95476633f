package llm

import (
	"fmt"
	"strings"
)

const ollamaDefaultBaseURL = "http://localhost:11434/v1"

// NewProvider creates an LLM provider based on configuration. An empty
// provider name means disabled and returns (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider("openai", config)

	case "ollama":
		// Ollama serves an OpenAI-compatible API and needs no key.
		if config.BaseURL == "" {
			config.BaseURL = ollamaDefaultBaseURL
		}
		if config.APIKey == "" {
			config.APIKey = "ollama"
		}
		return NewOpenAIProvider("ollama", config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}
