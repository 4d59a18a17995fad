package processor

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/echoscribe/internal/artifact"
	"github.com/nguyentantai21042004/echoscribe/internal/media"
	"github.com/nguyentantai21042004/echoscribe/internal/punctuate"
	"github.com/nguyentantai21042004/echoscribe/internal/subtitle"
	"github.com/nguyentantai21042004/echoscribe/internal/summarizer"
	"github.com/nguyentantai21042004/echoscribe/internal/transcribe"
)

// Error kinds reported on StageError.
const (
	KindUnsupportedMedia = "UnsupportedMediaError"
	KindTranscription    = "TranscriptionError"
	KindRestoration      = "RestorationError"
	KindSummarization    = "SummarizationError"
	KindComposition      = "CompositionError"
	KindPersistence      = "PersistenceError"
	KindCanceled         = "CanceledError"
	KindInternal         = "InternalError"
)

func classify(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, media.ErrUnsupportedMedia):
		return KindUnsupportedMedia
	case errors.Is(err, transcribe.ErrTranscription):
		return KindTranscription
	case errors.Is(err, punctuate.ErrRestoration), errors.Is(err, punctuate.ErrEmptyInput):
		return KindRestoration
	case errors.Is(err, summarizer.ErrSummarization):
		return KindSummarization
	case errors.Is(err, subtitle.ErrComposition):
		return KindComposition
	case errors.Is(err, artifact.ErrPersistence):
		return KindPersistence
	}
	return KindInternal
}

// stageErr wraps err for stage, keeping an existing StageError intact.
func stageErr(stage string, err error) *StageError {
	var se *StageError
	if errors.As(err, &se) {
		return se
	}
	return &StageError{Stage: stage, Kind: classify(err), Err: err}
}
