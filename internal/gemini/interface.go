package gemini

import (
	"context"
	"errors"
)

var (
	ErrNoAPIKey      = errors.New("no gemini API key configured")
	ErrEmptyResponse = errors.New("empty response from Gemini")
	// ErrTruncated means the model stopped for a reason other than a natural end,
	// such as the token limit or a safety block.
	ErrTruncated = errors.New("incomplete response from Gemini")
)

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Options are per-call generation settings.
type Options struct {
	System          string
	Temperature     float32
	MaxOutputTokens int32
}
