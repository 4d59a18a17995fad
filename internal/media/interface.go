package media

import (
	"context"
	"errors"
)

// ErrUnsupportedMedia is returned when a video has no decodable, non-empty audio track.
var ErrUnsupportedMedia = errors.New("unsupported media")

// Extractor converts a video container into a 16 kHz mono PCM WAV file.
type Extractor interface {
	Extract(ctx context.Context, videoPath, audioPath string) error
}
