package vectordb

import (
	"fmt"
	"strings"
)

// FormatResults renders search results as human-readable text.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d excerpt(s):\n\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("--- Excerpt %d (similarity: %.4f) ---\n", i+1, r.Similarity))
		if r.Chunk.Page > 0 {
			sb.WriteString(fmt.Sprintf("Page %d, chars %d-%d\n", r.Chunk.Page, r.Chunk.Start, r.Chunk.End))
		}
		sb.WriteString("\n")
		sb.WriteString(r.Chunk.Text)
		sb.WriteString("\n\n")
	}

	return sb.String()
}
