package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AGENTICRAG_"

// LoadDotEnv loads a .env file from the working directory into the process
// environment, if one exists. Variables already set are not overwritten.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (AGENTICRAG_*). A double underscore
// separates nested keys: AGENTICRAG_CHUNKING__SIZE -> chunking.size.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validProviders = map[ProviderType]bool{
	ProviderOllama:     true,
	ProviderOpenAI:     true,
	ProviderOpenRouter: true,
	ProviderMinimax:    true,
}

// validEmbeddingProviders lists the providers with an embeddings API.
var validEmbeddingProviders = map[ProviderType]bool{
	ProviderOllama: true,
	ProviderOpenAI: true,
}

var validTransports = map[ToolTransport]bool{
	TransportStdio: true,
	TransportHTTP:  true,
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of ollama, openai, openrouter, minimax", c.Provider)
	}
	embeddingProvider := c.EmbeddingProvider
	if embeddingProvider == "" {
		embeddingProvider = c.Provider
	}
	if !validEmbeddingProviders[embeddingProvider] {
		return fmt.Errorf("invalid embedding_provider %q: must be one of ollama, openai", embeddingProvider)
	}

	if c.ChatModel == "" {
		return fmt.Errorf("chat_model is required")
	}
	if c.ToolModel == "" {
		return fmt.Errorf("tool_model is required")
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("embedding_model is required")
	}

	if c.Chunking.Size <= 0 {
		return fmt.Errorf("chunking.size must be positive")
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return fmt.Errorf("chunking.overlap must be in [0, chunking.size), got %d", c.Chunking.Overlap)
	}

	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive")
	}

	for name, port := range map[string]int{"chat.port": c.Chat.Port, "matcher.port": c.Matcher.Port, "tools.port": c.Tools.Port} {
		if port < 0 || port > 65535 {
			return fmt.Errorf("%s out of range: %d", name, port)
		}
	}

	if c.Chat.SessionTTL < 0 {
		return fmt.Errorf("chat.session_ttl must be non-negative")
	}

	if !validTransports[c.Tools.Transport] {
		return fmt.Errorf("invalid tools.transport %q: must be one of stdio, http", c.Tools.Transport)
	}

	if c.Log.Level != "" && !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}

	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	case ProviderMinimax:
		return "MINIMAX_API_KEY"
	default:
		return ""
	}
}
