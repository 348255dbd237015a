package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts text-understanding providers for feedback analysis.
// The returned payload is the raw model output; callers parse it against
// their own contract and decide how to degrade on mismatch.
type Client interface {
	Analyze(ctx context.Context, req Request) (json.RawMessage, error)
}

// Request captures one call to the text-understanding service.
type Request struct {
	// System encodes the output contract and domain framing.
	System string
	// User carries the serialized feedback corpus.
	User string
	// JSONOutput asks the provider for a strict-JSON response.
	JSONOutput bool
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM not configured")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Analyze returns ErrNotConfigured.
func (PlaceholderClient) Analyze(ctx context.Context, req Request) (json.RawMessage, error) {
	_ = ctx
	_ = req
	return nil, ErrNotConfigured
}
