package processor

import (
	"github.com/nguyentantai21042004/echoscribe/internal/artifact"
	"github.com/nguyentantai21042004/echoscribe/internal/config"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
	"github.com/nguyentantai21042004/echoscribe/internal/media"
	"github.com/nguyentantai21042004/echoscribe/internal/punctuate"
	"github.com/nguyentantai21042004/echoscribe/internal/report"
	"github.com/nguyentantai21042004/echoscribe/internal/subtitle"
	"github.com/nguyentantai21042004/echoscribe/internal/summarizer"
	"github.com/nguyentantai21042004/echoscribe/internal/transcribe"
)

// Dependencies are the stage implementations, built once and shared by all runs.
type Dependencies struct {
	Store      artifact.Store
	Extractor  media.Extractor
	Engine     transcribe.Engine
	Restorer   punctuate.Restorer
	Summarizer summarizer.Summarizer
	Composer   subtitle.Composer
	// Report is optional; nil disables the DOCX report.
	Report report.Writer
}

type implProcessor struct {
	cfg    *config.Config
	deps   Dependencies
	sem    *semaphore
	logger logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Dependencies, log logger.Logger) Processor {
	limit := cfg.Performance.MaxConcurrent
	if limit <= 0 {
		limit = 1
	}
	return &implProcessor{
		cfg:    cfg,
		deps:   deps,
		sem:    newSemaphore(limit),
		logger: log,
	}
}
