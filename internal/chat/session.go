// Package chat holds per-visitor document chat sessions.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/vikrambhat2/AgenticRAG/internal/document"
	"github.com/vikrambhat2/AgenticRAG/internal/embeddings"
	"github.com/vikrambhat2/AgenticRAG/internal/llm"
	"github.com/vikrambhat2/AgenticRAG/internal/rag"
	"github.com/vikrambhat2/AgenticRAG/internal/vectordb"
)

// ErrNoDocument is returned when a question is asked before any document
// was uploaded.
var ErrNoDocument = errors.New("no document uploaded")

// Message is one transcript entry. Reasoning is only set on assistant
// messages produced by reasoning models.
type Message struct {
	Role      llm.Role  `json:"role"`
	Content   string    `json:"content"`
	Reasoning string    `json:"reasoning,omitempty"`
	Time      time.Time `json:"time"`
}

// Ingestor turns an uploaded file into chunks. *document.Loader
// implements it.
type Ingestor interface {
	Load(ctx context.Context, uri string, r io.Reader) ([]document.Chunk, error)
}

// Deps are the collaborators shared by all sessions.
type Deps struct {
	Loader      Ingestor
	Embedder    embeddings.Embedder
	Provider    llm.Provider
	TopK        int
	Temperature float64
}

// Session is one visitor's document, index and transcript. All operations
// on a session are serialised.
type Session struct {
	ID string

	deps *Deps

	mu       sync.Mutex
	docName  string
	index    *vectordb.ChromemIndex
	messages []Message

	// lastUsed is guarded by the owning Manager's mutex.
	lastUsed time.Time
}

func newSession(id string, deps *Deps) *Session {
	return &Session{ID: id, deps: deps}
}

// LoadDocument ingests the PDF in r and replaces the session's index with
// one built from it. The transcript is kept. It returns the chunk count.
func (s *Session) LoadDocument(ctx context.Context, name string, r io.Reader) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chunks, err := s.deps.Loader.Load(ctx, name, r)
	if err != nil {
		return 0, err
	}

	idx, err := vectordb.Build(ctx, s.deps.Embedder, uuid.NewString(), chunks, nil)
	if err != nil {
		return 0, fmt.Errorf("build index for %s: %w", name, err)
	}

	s.docName = name
	s.index = idx

	zlog.Info().Str("session", s.ID).Str("document", name).Int("chunks", len(chunks)).Msg("document indexed")
	return len(chunks), nil
}

// Ask runs retrieval and answering for question and records both sides of
// the exchange. On a model error the user message stays in the transcript.
func (s *Session) Ask(ctx context.Context, question string) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		return Message{}, ErrNoDocument
	}

	s.messages = append(s.messages, Message{Role: llm.RoleUser, Content: question, Time: time.Now()})

	p := &rag.Pipeline{
		Retriever: rag.NewRetriever(s.index, s.deps.TopK),
		Answerer:  &rag.Answerer{Provider: s.deps.Provider, Temperature: s.deps.Temperature},
	}
	reply, err := p.Ask(ctx, question)
	if err != nil {
		return Message{}, err
	}

	msg := Message{
		Role:      llm.RoleAssistant,
		Content:   reply.Answer,
		Reasoning: reply.Reasoning,
		Time:      time.Now(),
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Document returns the name and chunk count of the loaded document.
func (s *Session) Document() (name string, chunks int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return "", 0, false
	}
	return s.docName, s.index.Count(), true
}

// Reset drops the document and the transcript.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docName = ""
	s.index = nil
	s.messages = nil
}
