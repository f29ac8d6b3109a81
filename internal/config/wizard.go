package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the
// resulting Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to agenticrag! Let's configure the local model runtime.")
	fmt.Println()

	cfg := DefaultConfig()

	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"ollama", "openai", "openrouter", "minimax"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	preset := GetPreset(cfg.Provider)
	cfg.EmbeddingProvider = preset.EmbeddingProvider
	cfg.EmbeddingModel = preset.EmbeddingModel
	cfg.EmbeddingDimensions = preset.EmbeddingDimensions

	defaultURL := ""
	if cfg.Provider == ProviderOllama {
		defaultURL = defaultOllamaBaseURL
	}
	urlPrompt := promptui.Prompt{
		Label:   "Base URL (blank for the provider default)",
		Default: defaultURL,
	}
	if cfg.BaseURL, err = urlPrompt.Run(); err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}

	chatPrompt := promptui.Prompt{
		Label:   "Model for document chat",
		Default: preset.ChatModel,
	}
	if cfg.ChatModel, err = chatPrompt.Run(); err != nil {
		return nil, fmt.Errorf("chat model: %w", err)
	}

	toolPrompt := promptui.Prompt{
		Label:   "Model for resume matching tools",
		Default: preset.ToolModel,
	}
	if cfg.ToolModel, err = toolPrompt.Run(); err != nil {
		return nil, fmt.Errorf("tool model: %w", err)
	}

	topKPrompt := promptui.Prompt{
		Label:    "Excerpts retrieved per question",
		Default:  strconv.Itoa(cfg.TopK),
		Validate: validatePositiveInt,
	}
	topK, err := topKPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("top_k: %w", err)
	}
	cfg.TopK, _ = strconv.Atoi(topK)

	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment (or .env) before starting.\n", envVar)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}
