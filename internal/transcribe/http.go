package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

// implHTTP calls an OpenAI-compatible /v1/audio/transcriptions endpoint.
type implHTTP struct {
	url      string
	model    string
	language string
	prompt   string
	apiKey   string
	client   *http.Client
	logger   logger.Logger
}

// verboseResponse is the verbose_json body with segment granularity.
type verboseResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (h *implHTTP) Name() string { return "whisper-http" }

func (h *implHTTP) Transcribe(ctx context.Context, audioPath string) (Transcript, error) {
	body, contentType, err := h.buildForm(audioPath)
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: %w", ErrTranscription, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, body)
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: create request: %w", ErrTranscription, err)
	}
	req.Header.Set("Content-Type", contentType)
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	h.logger.Info(ctx, "Sending %s to %s", filepath.Base(audioPath), h.url)
	start := time.Now()

	resp, err := h.client.Do(req)
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: whisper request: %w", ErrTranscription, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: read response: %w", ErrTranscription, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Transcript{}, fmt.Errorf("%w: whisper API error (status %d): %s", ErrTranscription, resp.StatusCode, string(raw))
	}

	var result verboseResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return Transcript{}, fmt.Errorf("%w: decode response: %w", ErrTranscription, err)
	}

	t := Transcript{Language: result.Language}
	if t.Language == "" {
		t.Language = h.language
	}
	for _, s := range result.Segments {
		t.Segments = append(t.Segments, Segment{
			Text:  s.Text,
			Start: seconds(s.Start),
			End:   seconds(s.End),
		})
	}

	if err := validateSegments(t.Segments); err != nil {
		return Transcript{}, err
	}

	h.logger.Info(ctx, "Transcription completed in %s: %d segments", time.Since(start), len(t.Segments))
	return t, nil
}

func (h *implHTTP) buildForm(audioPath string) (*bytes.Buffer, string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copy audio data: %w", err)
	}

	if h.model != "" {
		w.WriteField("model", h.model)
	}
	w.WriteField("language", h.language)
	w.WriteField("temperature", "0.00")
	w.WriteField("response_format", "verbose_json")
	w.WriteField("timestamp_granularities[]", "segment")
	if h.prompt != "" {
		w.WriteField("prompt", h.prompt)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
