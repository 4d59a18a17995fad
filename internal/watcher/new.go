package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

// Options configures a Watcher.
type Options struct {
	InputDir string
	// SettleTimeout bounds how long a new file may keep growing before it is
	// handed off anyway.
	SettleTimeout time.Duration
	// ScanExisting dispatches videos already in InputDir at Start.
	ScanExisting bool
}

// New creates a Watcher on opts.InputDir. Concurrency is bounded by the handler.
func New(opts Options, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(opts.InputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.SettleTimeout <= 0 {
		opts.SettleTimeout = 30 * time.Second
	}

	return &implWatcher{
		opts:     opts,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		inflight: make(map[string]struct{}),
	}, nil
}
