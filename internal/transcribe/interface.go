package transcribe

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrTranscription covers decode and inference failures as well as audio with no speech.
var ErrTranscription = errors.New("transcription failed")

// Engine converts an audio file into timestamped text segments.
type Engine interface {
	Transcribe(ctx context.Context, audioPath string) (Transcript, error)
	Name() string
}

// Segment is one recognized span of speech.
type Segment struct {
	Text  string        `json:"text"`
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
}

// Transcript is the ordered output of one transcription.
type Transcript struct {
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Text joins the trimmed segment texts with single spaces, skipping empty ones.
func (t Transcript) Text() string {
	parts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		if txt := strings.TrimSpace(s.Text); txt != "" {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, " ")
}
