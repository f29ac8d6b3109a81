package document

import (
	"context"
	"io"
)

// Loader extracts and chunks a PDF in one step.
type Loader struct {
	Extractor *Extractor
	Chunker   *Chunker
}

// NewLoader builds a Loader with the given window parameters.
func NewLoader(ctx context.Context, size, overlap int) (*Loader, error) {
	chunker, err := NewChunker(size, overlap)
	if err != nil {
		return nil, err
	}
	extractor, err := NewExtractor(ctx)
	if err != nil {
		return nil, err
	}
	return &Loader{Extractor: extractor, Chunker: chunker}, nil
}

// Load reads the PDF from r and returns its chunks in document order.
func (l *Loader) Load(ctx context.Context, uri string, r io.Reader) ([]Chunk, error) {
	pages, err := l.Extractor.Pages(ctx, uri, r)
	if err != nil {
		return nil, err
	}
	return l.Chunker.Split(pages), nil
}
