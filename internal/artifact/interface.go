package artifact

import (
	"context"
	"errors"
)

var (
	// ErrPersistence wraps every filesystem failure while writing an artifact.
	ErrPersistence = errors.New("persistence failed")
	// ErrReleased is returned when a handle is used after Release.
	ErrReleased = errors.New("artifact already released")
	// ErrUnknownHandle is returned for handles that were not allocated by the run.
	ErrUnknownHandle = errors.New("unknown artifact handle")
)

// Kind classifies an artifact. Intermediate kinds live under the temp
// directory and never outlive the run; retained kinds are handed to the caller.
type Kind string

const (
	KindVideo      Kind = "video"
	KindAudio      Kind = "audio"
	KindTranscript Kind = "transcript"
	KindSummary    Kind = "summary"
	KindSubtitle   Kind = "subtitle"
	KindReport     Kind = "report"
)

func (k Kind) Retained() bool {
	switch k {
	case KindTranscript, KindSummary, KindSubtitle, KindReport:
		return true
	}
	return false
}

// Handle names one allocated file.
type Handle struct {
	Kind Kind
	Path string
}

// Store creates runs.
type Store interface {
	Begin(ctx context.Context) (Run, error)
}

// Run scopes every file produced while processing one video.
type Run interface {
	ID() string
	Allocate(kind Kind) (Handle, error)
	Import(h Handle, srcPath string) error
	Persist(h Handle, content []byte) (Handle, error)
	Release(h Handle) error
	// Close removes the intermediate directory, and the retained directory
	// too unless keepOutputs is set.
	Close(keepOutputs bool) error
}
