// Package rag answers questions about one document by retrieving its most
// similar excerpts and handing them to a language model.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/vikrambhat2/AgenticRAG/internal/vectordb"
)

// DefaultTopK is the number of excerpts retrieved per question.
const DefaultTopK = 5

// Retriever fetches the excerpts most relevant to a question.
type Retriever struct {
	Index vectordb.Searcher
	K     int
}

// NewRetriever returns a Retriever over idx. A non-positive k selects
// DefaultTopK.
func NewRetriever(idx vectordb.Searcher, k int) *Retriever {
	if k <= 0 {
		k = DefaultTopK
	}
	return &Retriever{Index: idx, K: k}
}

// Retrieve returns the retrieved chunk texts joined by newlines, most
// similar first. No match yields an empty string.
func (r *Retriever) Retrieve(ctx context.Context, question string) (string, error) {
	chunks, err := r.Index.Query(ctx, question, r.K)
	if err != nil {
		return "", fmt.Errorf("retrieve excerpts: %w", err)
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return strings.Join(texts, "\n"), nil
}
