package config

import "time"

const (
	// DefaultConfigFile is the config path used when --config is not given.
	DefaultConfigFile = ".agenticrag.yml"

	defaultOllamaBaseURL = "http://localhost:11434"
)

// ModelPreset describes the models suggested for a provider.
type ModelPreset struct {
	ChatModel string
	ToolModel string
	// EmbeddingProvider differs from the chat provider when the latter
	// offers no embeddings API.
	EmbeddingProvider   ProviderType
	EmbeddingModel      string
	EmbeddingDimensions int
}

var modelPresets = map[ProviderType]ModelPreset{
	ProviderOllama: {
		ChatModel:           "deepseek-r1:1.5b",
		ToolModel:           "llama3.2",
		EmbeddingProvider:   ProviderOllama,
		EmbeddingModel:      "all-minilm",
		EmbeddingDimensions: 384,
	},
	ProviderOpenAI: {
		ChatModel:           "gpt-4o-mini",
		ToolModel:           "gpt-4o-mini",
		EmbeddingProvider:   ProviderOpenAI,
		EmbeddingModel:      "text-embedding-3-small",
		EmbeddingDimensions: 1536,
	},
	ProviderOpenRouter: {
		ChatModel:           "deepseek/deepseek-r1",
		ToolModel:           "meta-llama/llama-3.2-3b-instruct",
		EmbeddingProvider:   ProviderOllama,
		EmbeddingModel:      "all-minilm",
		EmbeddingDimensions: 384,
	},
	ProviderMinimax: {
		ChatModel:           "MiniMax-M1",
		ToolModel:           "MiniMax-M1",
		EmbeddingProvider:   ProviderOllama,
		EmbeddingModel:      "all-minilm",
		EmbeddingDimensions: 384,
	},
}

// DefaultConfig returns a Config targeting a local Ollama runtime.
func DefaultConfig() *Config {
	preset := modelPresets[ProviderOllama]
	return &Config{
		Provider:            ProviderOllama,
		BaseURL:             defaultOllamaBaseURL,
		ChatModel:           preset.ChatModel,
		ToolModel:           preset.ToolModel,
		Temperature:         0,
		EmbeddingProvider:   ProviderOllama,
		EmbeddingModel:      preset.EmbeddingModel,
		EmbeddingDimensions: preset.EmbeddingDimensions,
		Chunking: ChunkConfig{
			Size:    512,
			Overlap: 220,
		},
		TopK:      5,
		IndexPath: ".agenticrag/index.gob.gz",
		Chat: ChatConfig{
			Port:       8501,
			SessionTTL: time.Hour,
		},
		Matcher: MatcherConfig{
			Port: 8502,
		},
		Tools: ToolsConfig{
			Transport: TransportStdio,
			Port:      8765,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// GetPreset returns the model preset for the given provider.
// Returns the Ollama preset if the provider is unknown.
func GetPreset(provider ProviderType) ModelPreset {
	if preset, ok := modelPresets[provider]; ok {
		return preset
	}
	return modelPresets[ProviderOllama]
}
