package vectordb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/vikrambhat2/AgenticRAG/internal/document"
	"github.com/vikrambhat2/AgenticRAG/internal/embeddings"
)

// ChromemIndex is an in-memory vector index over a single document,
// backed by one chromem-go collection.
type ChromemIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
	documentID string
}

// Build embeds every chunk (one embedding call per chunk) and returns the
// resulting index. progress may be nil.
func Build(ctx context.Context, embedder embeddings.Embedder, documentID string, chunks []document.Chunk, progress ProgressFunc) (*ChromemIndex, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(documentID, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	for i, chunk := range chunks {
		doc := chromem.Document{
			ID:       strconv.Itoa(chunk.Index),
			Content:  chunk.Text,
			Metadata: chunkToMap(chunk),
		}
		if err := col.AddDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("embed chunk %d: %w", chunk.Index, err)
		}
		if progress != nil {
			progress(i+1, len(chunks))
		}
	}

	return &ChromemIndex{
		db:         db,
		collection: col,
		embedFunc:  ef,
		documentID: documentID,
	}, nil
}

// DocumentID identifies the document this index was built from.
func (x *ChromemIndex) DocumentID() string { return x.documentID }

func (x *ChromemIndex) Count() int {
	return x.collection.Count()
}

// Search embeds the query and returns the k most similar chunks. Chunks
// with equal similarity keep document order. An empty index, k <= 0 or a
// blank query yield no results.
func (x *ChromemIndex) Search(ctx context.Context, text string, k int) ([]Result, error) {
	count := x.collection.Count()
	if k <= 0 || count == 0 || strings.TrimSpace(text) == "" {
		return nil, nil
	}

	// Score every chunk so that ties at the k-th position are cut in
	// document order rather than in map order.
	matches, err := x.collection.Query(ctx, text, count, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Chunk:      mapToChunk(m.Content, m.Metadata),
			Similarity: m.Similarity,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Chunk.Index < results[j].Chunk.Index
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (x *ChromemIndex) Query(ctx context.Context, text string, k int) ([]document.Chunk, error) {
	results, err := x.Search(ctx, text, k)
	if err != nil {
		return nil, err
	}
	chunks := make([]document.Chunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}
	return chunks, nil
}

// Persist writes the index to path as a gzip-compressed gob file.
func (x *ChromemIndex) Persist(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create index dir: %w", err)
		}
	}
	if err := x.db.ExportToFile(path, true, ""); err != nil {
		return fmt.Errorf("export index: %w", err)
	}
	return nil
}

// LoadIndex restores an index written by Persist. The embedder must match
// the one used to build it.
func LoadIndex(ctx context.Context, path string, embedder embeddings.Embedder) (*ChromemIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db := chromem.NewDB()
	if err := db.ImportFromFile(path, ""); err != nil {
		return nil, fmt.Errorf("import from file: %w", err)
	}

	cols := db.ListCollections()
	if len(cols) != 1 {
		return nil, fmt.Errorf("index %s holds %d collections, expected 1", path, len(cols))
	}
	var documentID string
	for name := range cols {
		documentID = name
	}

	// Re-acquire collection reference so it uses our embedding func.
	ef := embeddings.ToChromemFunc(embedder)
	col := db.GetCollection(documentID, ef)
	if col == nil {
		return nil, fmt.Errorf("collection %q not found after import", documentID)
	}

	return &ChromemIndex{
		db:         db,
		collection: col,
		embedFunc:  ef,
		documentID: documentID,
	}, nil
}

// chunkToMap flattens chunk positions into chromem metadata.
func chunkToMap(c document.Chunk) map[string]string {
	return map[string]string{
		"index": strconv.Itoa(c.Index),
		"page":  strconv.Itoa(c.Page),
		"start": strconv.Itoa(c.Start),
		"end":   strconv.Itoa(c.End),
	}
}

func mapToChunk(content string, m map[string]string) document.Chunk {
	index, _ := strconv.Atoi(m["index"])
	page, _ := strconv.Atoi(m["page"])
	start, _ := strconv.Atoi(m["start"])
	end, _ := strconv.Atoi(m["end"])
	return document.Chunk{
		Index: index,
		Text:  content,
		Page:  page,
		Start: start,
		End:   end,
	}
}
