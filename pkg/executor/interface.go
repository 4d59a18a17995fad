package executor

import (
	"context"
	"errors"
	"fmt"
)

// Executor runs external binaries (ffmpeg, whisper-cli) and returns their stdout.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}

// CommandError is returned when an external command exits unsuccessfully.
// Stderr is kept so callers can classify the failure.
type CommandError struct {
	Name   string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command '%s' failed: %v\nstderr: %s", e.Name, e.Err, e.Stderr)
	}
	return fmt.Sprintf("command '%s' failed: %v", e.Name, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Stderr returns the captured stderr of a failed command, or "".
func Stderr(err error) string {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Stderr
	}
	return ""
}
