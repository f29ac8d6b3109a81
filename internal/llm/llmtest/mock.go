// Package llmtest provides an in-memory llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/vikrambhat2/AgenticRAG/internal/llm"
)

// MockProvider is a test provider that records calls and returns canned
// responses. When Responses is non-empty, calls consume it in order and the
// last entry repeats; otherwise Response is returned.
type MockProvider struct {
	mu        sync.Mutex
	Calls     []llm.CompletionRequest
	Response  *llm.CompletionResponse
	Responses []string
	Err       error
	ProvName  string
}

// NewMockProvider returns a mock that answers every call with content.
func NewMockProvider(content string) *MockProvider {
	return &MockProvider{
		ProvName: "mock",
		Response: &llm.CompletionResponse{
			Content:      content,
			InputTokens:  10,
			OutputTokens: 20,
			Model:        "mock-model",
			FinishReason: "stop",
		},
	}
}

func (m *MockProvider) Name() string {
	return m.ProvName
}

func (m *MockProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Responses) > 0 {
		i := len(m.Calls) - 1
		if i >= len(m.Responses) {
			i = len(m.Responses) - 1
		}
		return &llm.CompletionResponse{Content: m.Responses[i], Model: "mock-model", FinishReason: "stop"}, nil
	}
	return m.Response, nil
}

// CallCount returns the number of Complete calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastRequest returns the most recent request, or the zero value.
func (m *MockProvider) LastRequest() llm.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return llm.CompletionRequest{}
	}
	return m.Calls[len(m.Calls)-1]
}
