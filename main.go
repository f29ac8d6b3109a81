package main

import (
	"os"

	"github.com/vikrambhat2/AgenticRAG/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
