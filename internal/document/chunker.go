package document

import (
	"fmt"
	"strings"
)

// Default window parameters, in characters.
const (
	DefaultChunkSize    = 512
	DefaultChunkOverlap = 220
)

// Chunker splits text into fixed-size windows that overlap by a fixed
// number of characters.
type Chunker struct {
	Size    int
	Overlap int
}

// NewChunker validates size and overlap. The window advances by
// size-overlap, so overlap must be smaller than size.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: size=%d overlap=%d", ErrInvalidChunking, size, overlap)
	}
	return &Chunker{Size: size, Overlap: overlap}, nil
}

// Split concatenates the pages and cuts the result into ordered chunks.
// Every character lands in at least one chunk and consecutive chunks share
// exactly Overlap characters. Blank input yields no chunks.
func (c *Chunker) Split(pages []Page) []Chunk {
	text := joinPages(pages)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	runes := []rune(text)

	// Rune offset at which each page begins in the joined text.
	pageStarts := make([]int, len(pages))
	offset := 0
	for i, p := range pages {
		pageStarts[i] = offset
		offset += len([]rune(p.Text)) + 1
	}

	step := c.Size - c.Overlap
	var chunks []Chunk
	for start := 0; ; start += step {
		end := min(start+c.Size, len(runes))
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  string(runes[start:end]),
			Page:  pageAt(pages, pageStarts, start),
			Start: start,
			End:   end,
		})
		if end == len(runes) {
			break
		}
	}
	return chunks
}

func pageAt(pages []Page, starts []int, offset int) int {
	page := 1
	for i, s := range starts {
		if s > offset {
			break
		}
		page = pages[i].Number
	}
	return page
}
