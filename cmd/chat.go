package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vikrambhat2/AgenticRAG/internal/chat"
	"github.com/vikrambhat2/AgenticRAG/internal/chatui"
	"github.com/vikrambhat2/AgenticRAG/internal/document"
	"github.com/vikrambhat2/AgenticRAG/internal/server"
)

var chatPort int

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the document chat web UI",
	Long: `Starts a web UI where each visitor uploads a PDF and asks questions about it.
Answers are generated only from the excerpts most similar to the question.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}
		provider, err := createLLMProviderFromConfig(cfg, cfg.ChatModel)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}
		loader, err := document.NewLoader(ctx, cfg.Chunking.Size, cfg.Chunking.Overlap)
		if err != nil {
			return fmt.Errorf("creating document loader: %w", err)
		}

		sessions := chat.NewManager(chat.Deps{
			Loader:      loader,
			Embedder:    embedder,
			Provider:    provider,
			TopK:        cfg.TopK,
			Temperature: cfg.Temperature,
		}, cfg.Chat.SessionTTL)

		port := cfg.Chat.Port
		if cmd.Flags().Changed("port") {
			port = chatPort
		}
		srv := server.New(server.Config{Name: "chat", Port: port})
		chatui.New(sessions).RegisterRoutes(srv.Router())

		fmt.Fprintf(os.Stderr, "Document chat running at http://localhost:%d (model=%s, embeddings=%s)\n",
			port, cfg.ChatModel, embedder.Name())
		return srv.Run(ctx)
	},
}

func init() {
	chatCmd.Flags().IntVarP(&chatPort, "port", "p", 8501, "port to listen on")
	rootCmd.AddCommand(chatCmd)
}
