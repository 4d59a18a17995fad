package subtitle

import (
	"fmt"
	"time"
)

const (
	FormatSRT = "srt"
	FormatVTT = "vtt"

	DefaultWindow = 2 * time.Second
)

// Options configures a Composer.
type Options struct {
	Window    time.Duration
	Format    string
	Segmenter Segmenter
}

type implComposer struct {
	window    time.Duration
	format    string
	segmenter Segmenter
}

// New creates a Composer. Zero options give 2 second SRT cues split on ". ".
func New(opts Options) (Composer, error) {
	if opts.Window == 0 {
		opts.Window = DefaultWindow
	}
	if opts.Window < 0 {
		return nil, fmt.Errorf("subtitle window must be positive, got %s", opts.Window)
	}
	if opts.Format == "" {
		opts.Format = FormatSRT
	}
	if opts.Format != FormatSRT && opts.Format != FormatVTT {
		return nil, fmt.Errorf("unsupported subtitle format %q", opts.Format)
	}
	if opts.Segmenter == nil {
		opts.Segmenter = PeriodSpaceSegmenter{}
	}
	return &implComposer{
		window:    opts.Window,
		format:    opts.Format,
		segmenter: opts.Segmenter,
	}, nil
}
