package punctuate

import (
	"context"
	"errors"
)

var (
	// ErrEmptyInput is returned for blank raw text.
	ErrEmptyInput = errors.New("empty input")
	// ErrRestoration covers inference failures and empty model output.
	ErrRestoration = errors.New("punctuation restoration failed")
)

// Restorer adds punctuation, capitalization and sentence boundaries to raw transcript text.
type Restorer interface {
	Restore(ctx context.Context, raw string) (string, error)
}
