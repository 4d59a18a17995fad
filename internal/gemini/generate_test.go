package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

// fakeGemini serves generateContent and records which key each call used.
type fakeGemini struct {
	mu       sync.Mutex
	keys     []string
	bodies   []map[string]any
	status   int
	response string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.keys = append(f.keys, r.Header.Get("x-goog-api-key"))
	var body map[string]any
	raw, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(raw, &body)
	f.bodies = append(f.bodies, body)

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 && f.status != http.StatusOK {
		w.WriteHeader(f.status)
	}
	io.WriteString(w, f.response)
}

func textResponse(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": text}},
			},
		}},
	})
	return string(b)
}

func finishedResponse(text, reason string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": text}},
			},
			"finishReason": reason,
		}},
	})
	return string(b)
}

func TestGenerate(t *testing.T) {
	fake := &fakeGemini{response: textResponse("Hello, world.")}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	g := New(Config{APIKeys: []string{"key-a"}, BaseURL: srv.URL}, logger.NewDiscard())
	out, err := g.Generate(context.Background(), "hello world", Options{Temperature: 0, MaxOutputTokens: 90, System: "fix it"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, world.", out)

	require.Len(t, fake.keys, 1)
	assert.Equal(t, "key-a", fake.keys[0])

	gen, ok := fake.bodies[0]["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 90, gen["maxOutputTokens"])
	assert.Contains(t, fake.bodies[0], "systemInstruction")
}

func TestGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(&fakeGemini{response: `{"candidates":[]}`})
	defer srv.Close()

	g := New(Config{APIKeys: []string{"k"}, BaseURL: srv.URL}, logger.NewDiscard())
	_, err := g.Generate(context.Background(), "x", Options{})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateIncompleteResponse(t *testing.T) {
	tests := []struct {
		name   string
		reason string
	}{
		{"token limit", "MAX_TOKENS"},
		{"safety", "SAFETY"},
		{"recitation", "RECITATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(&fakeGemini{response: finishedResponse("Hello world. This is", tt.reason)})
			defer srv.Close()

			g := New(Config{APIKeys: []string{"k"}, BaseURL: srv.URL}, logger.NewDiscard())
			out, err := g.Generate(context.Background(), "x", Options{MaxOutputTokens: 10})
			assert.ErrorIs(t, err, ErrTruncated)
			assert.Empty(t, out)
		})
	}
}

func TestGenerateStopReason(t *testing.T) {
	srv := httptest.NewServer(&fakeGemini{response: finishedResponse("Done.", "STOP")})
	defer srv.Close()

	g := New(Config{APIKeys: []string{"k"}, BaseURL: srv.URL}, logger.NewDiscard())
	out, err := g.Generate(context.Background(), "x", Options{})
	require.NoError(t, err)
	assert.Equal(t, "Done.", out)
}

func TestGenerateNoKey(t *testing.T) {
	g := New(Config{}, logger.NewDiscard())
	_, err := g.Generate(context.Background(), "x", Options{})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestQuotaRotatesWithoutRetry(t *testing.T) {
	fake := &fakeGemini{
		status:   http.StatusTooManyRequests,
		response: `{"error":{"code":429,"message":"Resource has been exhausted (e.g. check quota).","status":"RESOURCE_EXHAUSTED"}}`,
	}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	g := New(Config{APIKeys: []string{"key-a", "key-b"}, BaseURL: srv.URL}, logger.NewDiscard())

	_, err := g.Generate(context.Background(), "x", Options{})
	require.Error(t, err)
	require.Len(t, fake.keys, 1, "a failed call must not be re-issued")

	fake.status = http.StatusOK
	fake.response = textResponse("ok")
	out, err := g.Generate(context.Background(), "x", Options{})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, []string{"key-a", "key-b"}, fake.keys)
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("Error 429, Message: too many requests"), true},
		{errors.New("RESOURCE_EXHAUSTED"), true},
		{errors.New("daily quota exceeded"), true},
		{errors.New("Error 400, Message: invalid argument"), false},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, isQuotaError(tt.err))
		})
	}
}

func TestRotateFromIgnoresStaleIndex(t *testing.T) {
	g := New(Config{APIKeys: []string{"a", "b", "c"}}, logger.NewDiscard()).(*implGenerator)

	g.rotateFrom(0)
	g.rotateFrom(0)
	key, idx, err := g.activeKey()
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "b", key)

	g.rotateFrom(1)
	g.rotateFrom(2)
	key, _, _ = g.activeKey()
	assert.True(t, strings.EqualFold(key, "a"))
}
