package llm

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned by a generator built without a provider credential.
var ErrMissingAPIKey = errors.New("llm api key is not configured")

// Request is a single-turn generation: a system instruction plus one user prompt.
// SessionID only tags logs and provider metadata; no conversation state is kept.
type Request struct {
	System    string
	Prompt    string
	SessionID string
}

// TextGenerator is the interface for LLM text completion.
type TextGenerator interface {
	Generate(ctx context.Context, req Request) (string, error)
	GetModel() string
}
