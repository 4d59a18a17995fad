package watcher

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var errStillGrowing = errors.New("file still growing")

// waitForStableSize polls path until two consecutive checks see the same
// non-zero size, or timeout elapses.
func waitForStableSize(ctx context.Context, path string, timeout time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = timeout

	lastSize := int64(-1)
	check := func() error {
		info, err := os.Stat(path)
		if err != nil {
			return backoff.Permanent(err)
		}
		size := info.Size()
		if size > 0 && size == lastSize {
			return nil
		}
		lastSize = size
		return errStillGrowing
	}

	return backoff.Retry(check, backoff.WithContext(b, ctx))
}
