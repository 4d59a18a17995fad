package transcribe

import (
	"fmt"
	"strings"
)

// validateSegments rejects transcripts with no speech and timing that is not
// non-negative and non-decreasing.
func validateSegments(segs []Segment) error {
	var prevStart, prevEnd int64 = -1, -1
	hasText := false

	for i, s := range segs {
		if s.Start < 0 || s.End < 0 {
			return fmt.Errorf("%w: segment %d has negative offset", ErrTranscription, i)
		}
		if s.End < s.Start {
			return fmt.Errorf("%w: segment %d ends before it starts", ErrTranscription, i)
		}
		if int64(s.Start) < prevStart {
			return fmt.Errorf("%w: segment %d starts before segment %d", ErrTranscription, i, i-1)
		}
		if int64(s.End) < prevEnd {
			return fmt.Errorf("%w: segment %d ends before segment %d", ErrTranscription, i, i-1)
		}
		prevStart, prevEnd = int64(s.Start), int64(s.End)

		if strings.TrimSpace(s.Text) != "" {
			hasText = true
		}
	}

	if !hasText {
		return fmt.Errorf("%w: no speech detected", ErrTranscription)
	}
	return nil
}
