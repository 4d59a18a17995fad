package summarizer

import (
	"github.com/nguyentantai21042004/echoscribe/internal/gemini"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

// Options bounds the summary length in tokens and the minimum input size in words.
type Options struct {
	MinLength     int
	MaxLength     int
	MinInputWords int
}

type implSummarizer struct {
	gen    gemini.Generator
	opts   Options
	logger logger.Logger
}

// New creates a Summarizer backed by gen.
func New(gen gemini.Generator, opts Options, log logger.Logger) Summarizer {
	if opts.MinLength == 0 {
		opts.MinLength = 20
	}
	if opts.MaxLength == 0 {
		opts.MaxLength = 60
	}
	if opts.MinInputWords == 0 {
		opts.MinInputWords = 5
	}
	return &implSummarizer{
		gen:    gen,
		opts:   opts,
		logger: log,
	}
}
