package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"lecture.mp4", true},
		{"/in/Clip.MOV", true},
		{"talk.mkv", true},
		{"notes.txt", false},
		{"audio.wav", false},
		{"noext", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isVideoFile(tt.path))
		})
	}
}

func TestWaitForStableSize(t *testing.T) {
	t.Run("stable file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.mp4")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
		assert.NoError(t, waitForStableSize(context.Background(), path, 5*time.Second))
	})

	t.Run("missing file", func(t *testing.T) {
		err := waitForStableSize(context.Background(), filepath.Join(t.TempDir(), "gone.mp4"), 5*time.Second)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("empty file times out", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.mp4")
		require.NoError(t, os.WriteFile(path, nil, 0644))
		assert.Error(t, waitForStableSize(context.Background(), path, 500*time.Millisecond))
	})

	t.Run("cancelled", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.mp4")
		require.NoError(t, os.WriteFile(path, nil, 0644))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, waitForStableSize(ctx, path, 5*time.Second))
	})
}

func TestWatcherDispatchesNewVideos(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 4)

	w, err := New(Options{InputDir: dir, SettleTimeout: 5 * time.Second}, func(ctx context.Context, path string) error {
		got <- path
		return nil
	}, logger.NewDiscard())
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// give the watch loop a moment to start selecting
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	video := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(video, []byte("fake video"), 0644))

	select {
	case p := <-got:
		assert.Equal(t, video, p)
	case <-time.After(10 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Empty(t, got)
}

func TestWatcherScansExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "old.mkv")
	require.NoError(t, os.WriteFile(existing, []byte("video"), 0644))

	got := make(chan string, 1)
	w, err := New(Options{InputDir: dir, ScanExisting: true}, func(ctx context.Context, path string) error {
		got <- path
		return nil
	}, logger.NewDiscard())
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	select {
	case p := <-got:
		assert.Equal(t, existing, p)
	case <-time.After(10 * time.Second):
		t.Fatal("existing file was not dispatched")
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(Options{InputDir: filepath.Join(t.TempDir(), "nope")}, nil, logger.NewDiscard())
	assert.Error(t, err)
}
