package document

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

// Extractor pulls plain text out of PDF files using the eino PDF parser.
type Extractor struct {
	parser *pdf.PDFParser
}

// NewExtractor creates an Extractor that splits output per page.
func NewExtractor(ctx context.Context) (*Extractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: true})
	if err != nil {
		return nil, fmt.Errorf("create pdf parser: %w", err)
	}
	return &Extractor{parser: p}, nil
}

// Pages returns the text of each page in page order. uri names the input
// in errors and document metadata.
func (e *Extractor) Pages(ctx context.Context, uri string, r io.Reader) (pages []Page, err error) {
	// The underlying PDF reader panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("%w: %s: %v", ErrDocumentRead, uri, rec)
		}
	}()

	docs, err := e.parser.Parse(ctx, r, einoParser.WithURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentRead, uri, err)
	}

	pages = make([]Page, 0, len(docs))
	for i, doc := range docs {
		if doc == nil {
			continue
		}
		pages = append(pages, Page{Number: i + 1, Text: doc.Content})
	}
	return pages, nil
}

// Text returns the whole document as one string, pages separated by
// newlines.
func (e *Extractor) Text(ctx context.Context, uri string, r io.Reader) (string, error) {
	pages, err := e.Pages(ctx, uri, r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(joinPages(pages)), nil
}

func joinPages(pages []Page) string {
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n")
}
