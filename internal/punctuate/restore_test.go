package punctuate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/echoscribe/internal/gemini"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

type stubGenerator struct {
	out    string
	err    error
	prompt string
	opts   gemini.Options
	calls  int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, opts gemini.Options) (string, error) {
	s.calls++
	s.prompt = prompt
	s.opts = opts
	return s.out, s.err
}

func TestRestore(t *testing.T) {
	gen := &stubGenerator{out: "  Hello world. This is a test.\n"}
	r := New(gen, logger.NewDiscard())

	got, err := r.Restore(context.Background(), " hello world this is a test ")
	require.NoError(t, err)
	assert.Equal(t, "Hello world. This is a test.", got)
	assert.Equal(t, "hello world this is a test", gen.prompt)
	assert.Zero(t, gen.opts.Temperature)
	assert.NotEmpty(t, gen.opts.System)
}

func TestRestoreErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		gen     *stubGenerator
		wantErr error
		calls   int
	}{
		{name: "blank input", raw: "  \n", gen: &stubGenerator{}, wantErr: ErrEmptyInput},
		{name: "generator fails", raw: "hi there", gen: &stubGenerator{err: errors.New("boom")}, wantErr: ErrRestoration, calls: 1},
		{name: "empty output", raw: "hi there", gen: &stubGenerator{out: " "}, wantErr: ErrRestoration, calls: 1},
		{name: "cut off reply", raw: "hi there", gen: &stubGenerator{err: fmt.Errorf("%w: finish reason MAX_TOKENS", gemini.ErrTruncated)}, wantErr: gemini.ErrTruncated, calls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.gen, logger.NewDiscard()).Restore(context.Background(), tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantErr != ErrEmptyInput {
				assert.ErrorIs(t, err, ErrRestoration)
			}
			assert.Equal(t, tt.calls, tt.gen.calls)
		})
	}
}
