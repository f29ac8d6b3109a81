package llmtest

import (
	"context"
	"errors"
	"testing"

	"github.com/vikrambhat2/AgenticRAG/internal/llm"
)

func TestMockProviderRecordsCalls(t *testing.T) {
	mock := NewMockProvider("mock response")

	req := llm.CompletionRequest{
		Model:    "test-model",
		Messages: []llm.Message{llm.UserMessage("hello")},
	}
	resp, err := mock.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "mock response" {
		t.Errorf("expected 'mock response', got %q", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.LastRequest().Model != "test-model" {
		t.Errorf("expected model 'test-model', got %q", mock.LastRequest().Model)
	}
}

func TestMockProviderSequence(t *testing.T) {
	mock := NewMockProvider("")
	mock.Responses = []string{"one", "two"}

	var got []string
	for i := 0; i < 3; i++ {
		resp, err := mock.Complete(context.Background(), llm.CompletionRequest{})
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		got = append(got, resp.Content)
	}
	if got[0] != "one" || got[1] != "two" || got[2] != "two" {
		t.Errorf("sequence = %v", got)
	}
}

func TestMockProviderError(t *testing.T) {
	mock := NewMockProvider("")
	mock.Err = errors.New("boom")

	if _, err := mock.Complete(context.Background(), llm.CompletionRequest{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Errorf("failed calls are still recorded, got %d", mock.CallCount())
	}
}
