package llm

import (
	"context"
	"sync"

	zlog "github.com/rs/zerolog/log"
)

// Usage is the running token total of a MeteredProvider.
type Usage struct {
	Calls        int
	InputTokens  int
	OutputTokens int
	// CostUSD is summed per call using the model each reply reports.
	CostUSD float64
}

// MeteredProvider wraps a Provider and accumulates the token counts of
// every successful completion.
type MeteredProvider struct {
	provider Provider

	mu    sync.Mutex
	usage Usage
}

// NewMeteredProvider wraps the given provider with usage accounting.
func NewMeteredProvider(provider Provider) *MeteredProvider {
	return &MeteredProvider{provider: provider}
}

func (m *MeteredProvider) Name() string {
	return m.provider.Name()
}

func (m *MeteredProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	resp, err := m.provider.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	cost := EstimateCost(resp.Model, resp.InputTokens, resp.OutputTokens)
	m.mu.Lock()
	m.usage.Calls++
	m.usage.InputTokens += resp.InputTokens
	m.usage.OutputTokens += resp.OutputTokens
	m.usage.CostUSD += cost
	m.mu.Unlock()

	zlog.Debug().
		Str("provider", m.provider.Name()).
		Str("model", resp.Model).
		Int("input_tokens", resp.InputTokens).
		Int("output_tokens", resp.OutputTokens).
		Float64("cost_usd", cost).
		Msg("model usage")
	return resp, nil
}

// Usage returns the totals so far.
func (m *MeteredProvider) Usage() Usage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usage
}
