package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	exec := New()
	ctx := context.Background()

	t.Run("stdout returned", func(t *testing.T) {
		out, err := exec.Execute(ctx, "sh", "-c", "printf hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", out)
	})

	t.Run("stderr captured on failure", func(t *testing.T) {
		_, err := exec.Execute(ctx, "sh", "-c", "echo 'no audio' 1>&2; exit 3")
		require.Error(t, err)

		var ce *CommandError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "sh", ce.Name)
		assert.Equal(t, "no audio", Stderr(err))
		assert.Contains(t, err.Error(), "stderr: no audio")
	})

	t.Run("missing binary", func(t *testing.T) {
		_, err := exec.Execute(ctx, "definitely-not-a-real-binary-xyz")
		require.Error(t, err)
		assert.Empty(t, Stderr(err))
	})
}

func TestStderrOnForeignError(t *testing.T) {
	assert.Empty(t, Stderr(errors.New("plain")))
	assert.Empty(t, Stderr(nil))
}
