// Package matcherui serves the browser interface for matching a résumé
// against a job description.
package matcherui

import (
	"context"
	"io"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/vikrambhat2/AgenticRAG/internal/markdown"
	"github.com/vikrambhat2/AgenticRAG/internal/matcher"
)

const maxUploadBytes = 32 << 20

// TextExtractor returns the plain text of a PDF. *document.Extractor
// implements it.
type TextExtractor interface {
	Text(ctx context.Context, uri string, r io.Reader) (string, error)
}

// UI provides the matcher page and its JSON API.
type UI struct {
	extractor TextExtractor
	tools     matcher.ToolService
	md        *markdown.Renderer

	// runMu keeps one match run in flight at a time against the shared
	// tool session.
	runMu sync.Mutex
}

// New creates a UI that calls the given tool service.
func New(extractor TextExtractor, tools matcher.ToolService) *UI {
	return &UI{
		extractor: extractor,
		tools:     tools,
		md:        markdown.New(),
	}
}

// RegisterRoutes mounts all matcher UI routes onto the given router.
func (u *UI) RegisterRoutes(r chi.Router) {
	r.Get("/", u.ServeIndex)
	r.Post("/api/extract", u.handleExtract)
	r.Post("/api/match", u.handleMatch)
}
