package cmd

import (
	"fmt"
	"os"

	"github.com/vikrambhat2/AgenticRAG/internal/config"
	"github.com/vikrambhat2/AgenticRAG/internal/embeddings"
	"github.com/vikrambhat2/AgenticRAG/internal/llm"
)

// createEmbedderFromConfig creates the embedder shared by index, ask and chat.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}

	// The Ollama base URL is only meaningful for the Ollama embedder.
	baseURL := ""
	if provider == config.ProviderOllama && cfg.Provider == config.ProviderOllama {
		baseURL = cfg.BaseURL
	}

	if provider == config.ProviderOpenAI && os.Getenv(config.APIKeyEnvVar(provider)) == "" && baseURL == "" {
		return nil, fmt.Errorf("%s environment variable is required for OpenAI embeddings", config.APIKeyEnvVar(provider))
	}
	return embeddings.NewEmbedder(string(provider), cfg.EmbeddingModel, cfg.EmbeddingDimensions, baseURL)
}

// createLLMProviderFromConfig creates a chat provider for the given model.
func createLLMProviderFromConfig(cfg *config.Config, model string) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Provider), model, cfg.BaseURL)
}
