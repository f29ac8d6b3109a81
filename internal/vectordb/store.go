package vectordb

import (
	"context"

	"github.com/vikrambhat2/AgenticRAG/internal/document"
)

// Searcher answers nearest-neighbour queries over the chunks of one
// document.
type Searcher interface {
	// Query returns at most k chunks ordered from most to least similar.
	Query(ctx context.Context, text string, k int) ([]document.Chunk, error)

	// Count returns the number of stored chunks.
	Count() int
}

// Result pairs a chunk with its cosine similarity to the query.
type Result struct {
	Chunk      document.Chunk
	Similarity float32
}

// ProgressFunc is called after each chunk is embedded and stored.
type ProgressFunc func(done, total int)
