package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vikrambhat2/AgenticRAG/internal/config"
	"github.com/vikrambhat2/AgenticRAG/internal/logging"
)

var (
	cfgFile string
	verbose bool

	// cfg is loaded once per invocation by PersistentPreRunE.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "agenticrag",
	Short: "Chat with a PDF and match résumés to job descriptions using local models",
	Long: `AgenticRAG answers questions about a single PDF using retrieval-augmented
generation over a local vector index, and matches a résumé against a job
description through a small tool service reachable over MCP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init writes the config file, so it must not require a valid one.
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}
		config.LoadDotEnv()

		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w\nRun `agenticrag init` to create a config file", err)
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", cfgFile, err)
		}
		cfg = loaded

		level := cfg.Log.Level
		if verbose {
			level = zerolog.LevelDebugValue
		}
		logging.Setup(level, cfg.Log.Format)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
