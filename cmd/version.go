package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vikrambhat2/AgenticRAG/internal/tools"
)

// Version is set via ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of agenticrag",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agenticrag %s\n", Version)
	},
}

func init() {
	tools.Version = Version
	rootCmd.AddCommand(versionCmd)
}
