package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vikrambhat2/AgenticRAG/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize agenticrag configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose the model runtime and models, and writes a .agenticrag.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
