package media

import (
	"context"
	"path/filepath"

	"github.com/nguyentantai21042004/echoscribe/internal/logger"
	"github.com/nguyentantai21042004/echoscribe/pkg/executor"
)

// Options tunes the ffmpeg invocation.
type Options struct {
	BinaryPath string
	// ProbePath is the ffprobe binary; empty means the one beside BinaryPath.
	ProbePath  string
	SampleRate int
	Channels   int
}

type implExtractor struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger

	// probe returns ffprobe JSON for a file.
	probe func(ctx context.Context, path string) (string, error)
}

// New creates an Extractor that probes with ffprobe and converts with ffmpeg.
func New(opts Options, exec executor.Executor, log logger.Logger) Extractor {
	if opts.BinaryPath == "" {
		opts.BinaryPath = "ffmpeg"
	}
	if opts.ProbePath == "" {
		opts.ProbePath = probePathFor(opts.BinaryPath)
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = 16000
	}
	if opts.Channels == 0 {
		opts.Channels = 1
	}

	e := &implExtractor{
		opts:     opts,
		executor: exec,
		logger:   log,
	}
	e.probe = e.ffprobe
	return e
}

// probePathFor maps an ffmpeg binary to the ffprobe beside it. A bare name
// resolves through PATH.
func probePathFor(ffmpegPath string) string {
	dir, base := filepath.Split(ffmpegPath)
	name := "ffprobe" + filepath.Ext(base)
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
