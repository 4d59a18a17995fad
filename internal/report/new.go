package report

import "github.com/nguyentantai21042004/echoscribe/internal/logger"

type implDocx struct {
	sentencesPerParagraph int
	logger                logger.Logger
}

// NewDocx creates a Writer that produces Word documents.
func NewDocx(log logger.Logger) Writer {
	return &implDocx{
		sentencesPerParagraph: 4,
		logger:                log,
	}
}
