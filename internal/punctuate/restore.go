package punctuate

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/echoscribe/internal/gemini"
)

const systemPrompt = `You restore punctuation in English speech transcripts.
Add punctuation, capitalization and sentence boundaries. Fix obvious grammar only where a word form is clearly wrong.
Do not add, drop or reorder words. Do not summarize. Do not add commentary, quotes or markdown.
End every sentence with ". " so sentences can be split reliably.
Return only the corrected transcript.`

func (r *implRestorer) Restore(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyInput
	}

	r.logger.Debug(ctx, "Restoring punctuation for %d words", len(strings.Fields(raw)))

	out, err := r.gen.Generate(ctx, raw, gemini.Options{
		System:      systemPrompt,
		Temperature: 0,
		// punctuated text is roughly the raw length plus marks
		MaxOutputTokens: int32(len(strings.Fields(raw))*2 + 64),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRestoration, err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: model returned no text", ErrRestoration)
	}
	return out, nil
}
