package config

import "time"

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderOllama     ProviderType = "ollama"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderMinimax    ProviderType = "minimax"
)

// ToolTransport selects how the tool service is exposed.
type ToolTransport string

const (
	TransportStdio ToolTransport = "stdio"
	TransportHTTP  ToolTransport = "http"
)

// Config is the top-level configuration, corresponding to .agenticrag.yml.
type Config struct {
	Provider            ProviderType  `yaml:"provider" koanf:"provider"`
	BaseURL             string        `yaml:"base_url" koanf:"base_url"`
	ChatModel           string        `yaml:"chat_model" koanf:"chat_model"`
	ToolModel           string        `yaml:"tool_model" koanf:"tool_model"`
	Temperature         float64       `yaml:"temperature" koanf:"temperature"`
	EmbeddingProvider   ProviderType  `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel      string        `yaml:"embedding_model" koanf:"embedding_model"`
	EmbeddingDimensions int           `yaml:"embedding_dimensions" koanf:"embedding_dimensions"`
	Chunking            ChunkConfig   `yaml:"chunking" koanf:"chunking"`
	TopK                int           `yaml:"top_k" koanf:"top_k"`
	IndexPath           string        `yaml:"index_path" koanf:"index_path"`
	Chat                ChatConfig    `yaml:"chat" koanf:"chat"`
	Matcher             MatcherConfig `yaml:"matcher" koanf:"matcher"`
	Tools               ToolsConfig   `yaml:"tools" koanf:"tools"`
	Log                 LogConfig     `yaml:"log" koanf:"log"`
}

// ChunkConfig controls how document text is windowed before embedding.
type ChunkConfig struct {
	Size    int `yaml:"size" koanf:"size"`
	Overlap int `yaml:"overlap" koanf:"overlap"`
}

// ChatConfig holds settings for the document chat UI.
type ChatConfig struct {
	Port       int           `yaml:"port" koanf:"port"`
	SessionTTL time.Duration `yaml:"session_ttl" koanf:"session_ttl"`
}

// MatcherConfig holds settings for the resume matcher UI and client.
type MatcherConfig struct {
	Port int `yaml:"port" koanf:"port"`
	// ToolServer addresses the tool service: an http(s) URL, or a command
	// line spawned over stdio. Empty means "this executable, tools".
	ToolServer string `yaml:"tool_server" koanf:"tool_server"`
}

// ToolsConfig holds settings for the tool service.
type ToolsConfig struct {
	Transport ToolTransport `yaml:"transport" koanf:"transport"`
	Port      int           `yaml:"port" koanf:"port"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
