package llm

import (
	"context"
	"errors"
)

// ErrModelInvocation marks a failure to reach the model or a non-success
// reply from it.
var ErrModelInvocation = errors.New("model invocation failed")

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
