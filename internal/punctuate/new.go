package punctuate

import (
	"github.com/nguyentantai21042004/echoscribe/internal/gemini"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

type implRestorer struct {
	gen    gemini.Generator
	logger logger.Logger
}

// New creates a Restorer backed by gen.
func New(gen gemini.Generator, log logger.Logger) Restorer {
	return &implRestorer{gen: gen, logger: log}
}
