package llm

import (
	"fmt"
	"os"
)

// DefaultOllamaHost is used when neither a base URL nor OLLAMA_HOST is set.
const DefaultOllamaHost = "http://localhost:11434"

// compatibleEndpoint describes a hosted OpenAI-compatible API.
type compatibleEndpoint struct {
	baseURL string
	keyEnv  string
}

var compatibleEndpoints = map[string]compatibleEndpoint{
	"openrouter": {baseURL: "https://openrouter.ai/api/v1", keyEnv: "OPENROUTER_API_KEY"},
	"minimax":    {baseURL: "https://api.minimax.io/v1", keyEnv: "MINIMAX_API_KEY"},
}

// NewProvider creates a new LLM provider based on the given provider type,
// model and optional base URL. Supported provider types: "ollama", "openai",
// "openrouter", "minimax". The "openai" provider accepts any
// OpenAI-compatible base URL; the others default to their hosted API.
func NewProvider(providerType, model, baseURL string) (Provider, error) {
	switch providerType {
	case "ollama":
		host := baseURL
		if host == "" {
			host = os.Getenv("OLLAMA_HOST")
		}
		if host == "" {
			host = DefaultOllamaHost
		}
		return NewOllamaProvider(host, model), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" && baseURL == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, model, baseURL), nil

	case "openrouter", "minimax":
		ep := compatibleEndpoints[providerType]
		apiKey := os.Getenv(ep.keyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("%s environment variable is not set", ep.keyEnv)
		}
		url := baseURL
		if url == "" {
			url = ep.baseURL
		}
		p := NewOpenAIProvider(apiKey, model, url)
		p.name = providerType
		return p, nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
