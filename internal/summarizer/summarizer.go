package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/echoscribe/internal/gemini"
)

const systemPrompt = `You write abstractive summaries of English speech transcripts.
Write between %d and %d words of plain prose in English.
Use only facts stated in the transcript. No headings, bullet points, markdown or preamble.`

func (s *implSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	words := len(strings.Fields(text))
	if words < s.opts.MinInputWords {
		return "", fmt.Errorf("%w: %d words, need at least %d", ErrInputTooShort, words, s.opts.MinInputWords)
	}

	s.logger.Debug(ctx, "Summarizing %d words (target %d-%d)", words, s.opts.MinLength, s.opts.MaxLength)

	out, err := s.gen.Generate(ctx, text, gemini.Options{
		System:          fmt.Sprintf(systemPrompt, s.opts.MinLength, s.opts.MaxLength),
		Temperature:     0,
		MaxOutputTokens: s.maxOutputTokens(),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSummarization, err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: model returned no text", ErrSummarization)
	}
	return out, nil
}

// maxOutputTokens leaves headroom over MaxLength since model tokens are
// shorter than words.
func (s *implSummarizer) maxOutputTokens() int32 {
	return int32(s.opts.MaxLength*2 + 16)
}
