package subtitle

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrComposition is returned when a track cannot be built or encoded.
	ErrComposition = errors.New("subtitle composition failed")
	// ErrEmptyTrack is returned when the text yields no clauses.
	ErrEmptyTrack = fmt.Errorf("%w: no clauses", ErrComposition)
)

// Segmenter splits text into subtitle clauses.
type Segmenter interface {
	Split(text string) []string
}

// Cue is one timed subtitle entry. Index is 1-based.
type Cue struct {
	Index   int
	Start   time.Duration
	End     time.Duration
	Content string
}

// Track is an ordered, contiguously indexed list of cues.
type Track []Cue

// Composer turns punctuated text into a subtitle track and its file encoding.
type Composer interface {
	Compose(text string) (Track, error)
	Encode(track Track) ([]byte, error)
	// Ext is the file extension of Encode's output, without the dot.
	Ext() string
}
