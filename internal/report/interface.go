package report

import (
	"context"
	"time"
)

// Report is the content of one finished run.
type Report struct {
	Title      string
	Summary    string
	Transcript string
	CreatedAt  time.Time
}

// Writer renders a Report to a file.
type Writer interface {
	Write(ctx context.Context, r Report, path string) error
}
