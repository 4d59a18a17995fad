package summarizer

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrSummarization covers inference failures and empty model output.
	ErrSummarization = errors.New("summarization failed")
	// ErrInputTooShort is returned when the text is below the minimum word count.
	ErrInputTooShort = fmt.Errorf("%w: input too short", ErrSummarization)
)

// Summarizer condenses punctuated transcript text into a short abstract.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
