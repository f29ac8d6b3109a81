package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vikrambhat2/AgenticRAG/internal/document"
	"github.com/vikrambhat2/AgenticRAG/internal/embeddings"
	"github.com/vikrambhat2/AgenticRAG/internal/progress"
	"github.com/vikrambhat2/AgenticRAG/internal/vectordb"
)

var indexOutput string

var indexCmd = &cobra.Command{
	Use:   "index <pdf>",
	Short: "Build and save the vector index for a PDF",
	Long:  `Extracts the text of a PDF, splits it into overlapping chunks, embeds every chunk and writes the index to disk for the ask command.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()

		loader, err := document.NewLoader(ctx, cfg.Chunking.Size, cfg.Chunking.Overlap)
		if err != nil {
			return fmt.Errorf("creating document loader: %w", err)
		}
		chunks, err := loader.Load(ctx, filepath.Base(path), f)
		if err != nil {
			return err
		}
		if len(chunks) == 0 {
			zlog.Warn().Str("document", path).Msg("no extractable text; writing an empty index")
			fmt.Fprintf(os.Stderr, "Warning: %s contains no extractable text; questions will find no excerpts.\n", path)
		}

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		out := cfg.IndexPath
		if indexOutput != "" {
			out = indexOutput
		}

		start := time.Now()
		reporter := progress.NewReporter()
		idx, err := writeIndex(ctx, embedder, chunks, out, progress.Func(reporter))
		reporter.Finish()
		if err != nil {
			return err
		}

		zlog.Info().Str("document", path).Int("chunks", idx.Count()).Dur("took", time.Since(start)).Msg("index built")
		fmt.Printf("Indexed %d chunks from %s into %s\n", idx.Count(), path, out)
		return nil
	},
}

// writeIndex embeds chunks into a new index and persists it to out. Zero
// chunks produce an empty index that answers every query with no results.
func writeIndex(ctx context.Context, embedder embeddings.Embedder, chunks []document.Chunk, out string, onProgress vectordb.ProgressFunc) (*vectordb.ChromemIndex, error) {
	idx, err := vectordb.Build(ctx, embedder, uuid.NewString(), chunks, onProgress)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	if err := idx.Persist(out); err != nil {
		return nil, err
	}
	return idx, nil
}

func init() {
	indexCmd.Flags().StringVarP(&indexOutput, "output", "o", "", "index file (default: index_path from config)")
	rootCmd.AddCommand(indexCmd)
}
