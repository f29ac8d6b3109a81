package cmd

import (
	"fmt"
	"strings"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vikrambhat2/AgenticRAG/internal/llm"
	"github.com/vikrambhat2/AgenticRAG/internal/rag"
	"github.com/vikrambhat2/AgenticRAG/internal/vectordb"
)

var (
	askIndex string
	askTopK  int
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from a saved index",
	Long:  `Loads an index written by the index command, retrieves the excerpts most similar to the question and asks the chat model to answer from them only.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		question := strings.Join(args, " ")

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		path := cfg.IndexPath
		if askIndex != "" {
			path = askIndex
		}
		idx, err := vectordb.LoadIndex(ctx, path, embedder)
		if err != nil {
			return fmt.Errorf("%w\nRun `agenticrag index <pdf>` first", err)
		}

		inner, err := createLLMProviderFromConfig(cfg, cfg.ChatModel)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}
		provider := llm.NewMeteredProvider(inner)

		k := cfg.TopK
		if askTopK > 0 {
			k = askTopK
		}

		if verbose {
			results, err := idx.Search(ctx, question, k)
			if err != nil {
				return err
			}
			fmt.Println(vectordb.FormatResults(results))
		}

		pipeline := &rag.Pipeline{
			Retriever: rag.NewRetriever(idx, k),
			Answerer:  &rag.Answerer{Provider: provider, Temperature: cfg.Temperature},
		}
		reply, err := pipeline.Ask(ctx, question)
		if err != nil {
			return err
		}

		u := provider.Usage()
		zlog.Info().
			Int("model_calls", u.Calls).
			Int("input_tokens", u.InputTokens).
			Int("output_tokens", u.OutputTokens).
			Float64("cost_usd", u.CostUSD).
			Msg("answered")

		if verbose && reply.Reasoning != "" {
			fmt.Printf("Reasoning:\n%s\n\n", reply.Reasoning)
		}
		fmt.Println(reply.Answer)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askIndex, "index", "", "index file (default: index_path from config)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "excerpts to retrieve (default: top_k from config)")
	rootCmd.AddCommand(askCmd)
}
