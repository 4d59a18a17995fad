package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

type implStore struct {
	opts Options
}

func (s *implStore) Begin(ctx context.Context) (Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	r := &implRun{
		id:        id,
		tempDir:   filepath.Join(s.opts.TempDir, id),
		outputDir: filepath.Join(s.opts.OutputDir, id),
		subExt:    s.opts.SubtitleExt,
		handles:   make(map[string]state),
	}

	if err := os.MkdirAll(r.tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir %s: %w", ErrPersistence, r.tempDir, err)
	}
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		os.RemoveAll(r.tempDir)
		return nil, fmt.Errorf("%w: mkdir %s: %w", ErrPersistence, r.outputDir, err)
	}

	return r, nil
}

type state int

const (
	stateAllocated state = iota
	stateWritten
	stateReleased
)

type implRun struct {
	id        string
	tempDir   string
	outputDir string
	subExt    string

	mu      sync.Mutex
	handles map[string]state
	closed  bool
}

func (r *implRun) ID() string { return r.id }

func (r *implRun) Allocate(kind Kind) (Handle, error) {
	ext, err := r.extension(kind)
	if err != nil {
		return Handle{}, err
	}

	dir := r.tempDir
	if kind.Retained() {
		dir = r.outputDir
	}
	h := Handle{
		Kind: kind,
		Path: filepath.Join(dir, fmt.Sprintf("%s-%s.%s", kind, uuid.NewString(), ext)),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Handle{}, fmt.Errorf("allocate %s: run %s closed", kind, r.id)
	}
	r.handles[h.Path] = stateAllocated
	return h, nil
}

func (r *implRun) extension(kind Kind) (string, error) {
	switch kind {
	case KindVideo:
		return "mp4", nil
	case KindAudio:
		return "wav", nil
	case KindTranscript, KindSummary:
		return "txt", nil
	case KindSubtitle:
		return r.subExt, nil
	case KindReport:
		return "docx", nil
	}
	return "", fmt.Errorf("unknown artifact kind %q", kind)
}

// check verifies h belongs to this run and is still usable.
func (r *implRun) check(h Handle) error {
	st, ok := r.handles[h.Path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, h.Path)
	}
	if st == stateReleased {
		return fmt.Errorf("%w: %s", ErrReleased, h.Path)
	}
	return nil
}

func (r *implRun) Import(h Handle, srcPath string) error {
	r.mu.Lock()
	err := r.check(h)
	r.mu.Unlock()
	if err != nil {
		return err
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrPersistence, srcPath, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrPersistence, srcPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrPersistence, srcPath)
	}

	if err := writeAtomic(h.Path, func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	}); err != nil {
		return fmt.Errorf("%w: import %s: %w", ErrPersistence, srcPath, err)
	}

	r.mark(h, stateWritten)
	return nil
}

func (r *implRun) Persist(h Handle, content []byte) (Handle, error) {
	r.mu.Lock()
	err := r.check(h)
	r.mu.Unlock()
	if err != nil {
		return Handle{}, err
	}

	if err := writeAtomic(h.Path, func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	}); err != nil {
		return Handle{}, fmt.Errorf("%w: persist %s: %w", ErrPersistence, h.Kind, err)
	}

	r.mark(h, stateWritten)
	return h, nil
}

func (r *implRun) mark(h Handle, st state) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handles[h.Path] != stateReleased {
		r.handles[h.Path] = st
	}
}

func (r *implRun) Release(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check(h); err != nil {
		return err
	}
	r.handles[h.Path] = stateReleased

	if err := os.Remove(h.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("release %s: %w", h.Path, err)
	}
	return nil
}

func (r *implRun) Close(keepOutputs bool) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	for p := range r.handles {
		r.handles[p] = stateReleased
	}
	r.mu.Unlock()

	var errs []error
	if err := os.RemoveAll(r.tempDir); err != nil {
		errs = append(errs, fmt.Errorf("remove %s: %w", r.tempDir, err))
	}
	if !keepOutputs {
		if err := os.RemoveAll(r.outputDir); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", r.outputDir, err))
		}
	}
	return errors.Join(errs...)
}

// writeAtomic writes through a temp file in the target directory and renames
// it into place, so readers never see a partial artifact.
func writeAtomic(path string, fill func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".artifact-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()
	if err := fill(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
