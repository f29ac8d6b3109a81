package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFactoryReturnsErrorForMissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewProvider("openai", "gpt-4o", ""); err == nil {
		t.Error("expected error for openai with missing API key")
	}
}

func TestFactoryAllowsCompatibleEndpointWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	provider, err := NewProvider("openai", "llama3.2", "http://localhost:11434/v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("expected name 'openai', got %q", provider.Name())
	}
}

func TestFactoryReturnsErrorForUnknownProvider(t *testing.T) {
	if _, err := NewProvider("unknown", "some-model", ""); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFactoryCreatesOllamaWithDefaultHost(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	provider, err := NewProvider("ollama", "llama3.2", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ollamaP, ok := provider.(*OllamaProvider)
	if !ok {
		t.Fatal("expected *OllamaProvider")
	}
	if ollamaP.baseURL != DefaultOllamaHost {
		t.Errorf("expected default host, got %q", ollamaP.baseURL)
	}
}

func TestFactoryPrefersBaseURLOverEnv(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "http://env-host:11434")
	provider, err := NewProvider("ollama", "llama3.2", "http://flag-host:11434/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := provider.(*OllamaProvider).baseURL; got != "http://flag-host:11434" {
		t.Errorf("baseURL = %q", got)
	}
}

func TestOllamaComplete(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message:         ollamaMessage{Role: "assistant", Content: "Paris"},
			Model:           "llama3.2",
			Done:            true,
			DoneReason:      "stop",
			PromptEvalCount: 12,
			EvalCount:       3,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2")
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{SystemMessage("be brief"), UserMessage("capital of France?")},
		JSONMode: true,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "Paris" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.InputTokens != 12 || resp.OutputTokens != 3 {
		t.Errorf("tokens = %d/%d", resp.InputTokens, resp.OutputTokens)
	}
	if got.Model != "llama3.2" || got.Stream || got.Format != "json" {
		t.Errorf("unexpected request %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "capital of France?" {
		t.Errorf("unexpected messages %+v", got.Messages)
	}
}

func TestOllamaFoldsThinkingIntoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "42", Thinking: "  count carefully "},
			Done:    true,
		})
	}))
	defer srv.Close()

	resp, err := NewOllamaProvider(srv.URL, "deepseek-r1:1.5b").Complete(context.Background(), CompletionRequest{
		Messages: []Message{UserMessage("answer?")},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "<think>count carefully</think>42" {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestOllamaErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "missing").Complete(context.Background(), CompletionRequest{
		Messages: []Message{UserMessage("hi")},
	})
	if !errors.Is(err, ErrModelInvocation) {
		t.Fatalf("expected ErrModelInvocation, got %v", err)
	}
}

func TestOllamaUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewOllamaProvider(url, "llama3.2").Complete(context.Background(), CompletionRequest{
		Messages: []Message{UserMessage("hi")},
	})
	if !errors.Is(err, ErrModelInvocation) {
		t.Fatalf("expected ErrModelInvocation, got %v", err)
	}
}

func TestOpenAICompatibleComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"model": "llama3.2",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "hello"}}],
			"usage": {"prompt_tokens": 5, "completion_tokens": 1, "total_tokens": 6}
		}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("", "llama3.2", srv.URL+"/v1")
	resp, err := p.Complete(context.Background(), CompletionRequest{Messages: []Message{UserMessage("hi")}})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "hello" || resp.FinishReason != "stop" || resp.InputTokens != 5 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"plain string", "  parsed  ", "parsed"},
		{"completion response", &CompletionResponse{Content: "from model\n"}, "from model"},
		{"message value", Message{Role: RoleAssistant, Content: "msg"}, "msg"},
		{"message object map", map[string]any{"content": "content field"}, "content field"},
		{"list of maps uses text", []any{map[string]any{"text": "first"}, map[string]any{"text": "second"}}, "first"},
		{"list of maps without text", []map[string]any{{"content": "ignored"}}, ""},
		{"list of messages", []Message{{Content: "m1"}, {Content: "m2"}}, "m1"},
		{"list of strings", []string{"s1", "s2"}, "s1"},
		{"empty list", []any{}, ""},
		{"nil", nil, ""},
		{"number coerced", 0.75, "0.75"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoles(t *testing.T) {
	if RoleSystem != "system" || RoleUser != "user" || RoleAssistant != "assistant" {
		t.Error("unexpected role values")
	}
	if m := SystemMessage("x"); m.Role != RoleSystem || m.Content != "x" {
		t.Errorf("SystemMessage = %+v", m)
	}
}

func TestFactoryCreatesHostedCompatibleProviders(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("MINIMAX_API_KEY", "mm-key")

	for _, name := range []string{"openrouter", "minimax"} {
		provider, err := NewProvider(name, "some-model", "")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if _, ok := provider.(*OpenAIProvider); !ok {
			t.Errorf("%s: expected *OpenAIProvider, got %T", name, provider)
		}
		if provider.Name() != name {
			t.Errorf("expected name %q, got %q", name, provider.Name())
		}
	}
}

func TestFactoryHostedProviderRequiresKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")

	if _, err := NewProvider("openrouter", "some-model", "http://localhost:9999/v1"); err == nil {
		t.Error("expected error for openrouter with missing API key")
	}
}

func TestHostedProviderUsesCustomBaseURL(t *testing.T) {
	t.Setenv("MINIMAX_API_KEY", "mm-key")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer mm-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model": "MiniMax-M1", "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "hi"}}]}`))
	}))
	defer srv.Close()

	provider, err := NewProvider("minimax", "MiniMax-M1", srv.URL+"/v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := provider.Complete(context.Background(), CompletionRequest{Messages: []Message{UserMessage("hi")}})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "hi" {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestEstimateCost(t *testing.T) {
	got := EstimateCost("gpt-4o-mini", 1_000_000, 1_000_000)
	if math.Abs(got-0.75) > 1e-9 {
		t.Errorf("EstimateCost(gpt-4o-mini) = %v, want 0.75", got)
	}
	if got := EstimateCost("llama3.2", 5000, 5000); got != 0 {
		t.Errorf("local model should be free, got %v", got)
	}
}

// fixedProvider answers every call with resp, or fails with err.
type fixedProvider struct {
	resp *CompletionResponse
	err  error
}

func (p *fixedProvider) Name() string { return "fixed" }

func (p *fixedProvider) Complete(context.Context, CompletionRequest) (*CompletionResponse, error) {
	return p.resp, p.err
}

func TestMeteredProviderAccumulatesUsage(t *testing.T) {
	inner := &fixedProvider{resp: &CompletionResponse{Content: "ok", Model: "gpt-4o", InputTokens: 400_000, OutputTokens: 100_000}}
	m := NewMeteredProvider(inner)

	for i := 0; i < 2; i++ {
		if _, err := m.Complete(context.Background(), CompletionRequest{}); err != nil {
			t.Fatalf("Complete: %v", err)
		}
	}

	u := m.Usage()
	if u.Calls != 2 || u.InputTokens != 800_000 || u.OutputTokens != 200_000 {
		t.Errorf("unexpected usage %+v", u)
	}
	if math.Abs(u.CostUSD-4.0) > 1e-9 {
		t.Errorf("cost = %v, want 4.0", u.CostUSD)
	}
	if m.Name() != "fixed" {
		t.Errorf("Name() = %q", m.Name())
	}
}

func TestMeteredProviderSkipsFailedCalls(t *testing.T) {
	m := NewMeteredProvider(&fixedProvider{err: ErrModelInvocation})

	if _, err := m.Complete(context.Background(), CompletionRequest{}); !errors.Is(err, ErrModelInvocation) {
		t.Fatalf("expected ErrModelInvocation, got %v", err)
	}
	if u := m.Usage(); u.Calls != 0 {
		t.Errorf("failed call should not count, got %+v", u)
	}
}
