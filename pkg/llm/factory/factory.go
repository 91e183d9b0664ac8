package factory

import (
	"fmt"
	"time"

	"callcenter-analysis-be/pkg/llm"
	"callcenter-analysis-be/pkg/llm/ollama"
	"callcenter-analysis-be/pkg/llm/openai"
)

// NewLLMProvider picks the scoring backend. "openai" covers any
// OpenAI-compatible chat completions endpoint.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string, timeout time.Duration) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewProvider(baseURL, modelName, timeout), nil
	case "openai", "":
		if baseURL == "" {
			return nil, fmt.Errorf("SCORING_API_URL is required for the openai provider")
		}
		return openai.NewProvider(apiKey, baseURL, modelName, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
