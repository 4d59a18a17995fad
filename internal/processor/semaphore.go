package processor

import (
	"context"

	"github.com/nguyentantai21042004/echoscribe/internal/metrics"
)

// semaphore bounds concurrent runs and mirrors occupancy into the in-flight gauge.
type semaphore struct {
	slots chan struct{}
}

func newSemaphore(capacity int) *semaphore {
	return &semaphore{slots: make(chan struct{}, capacity)}
}

// acquire blocks until a slot frees up or ctx ends.
func (s *semaphore) acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		metrics.RunsInFlight.Inc()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) release() {
	<-s.slots
	metrics.RunsInFlight.Dec()
}
