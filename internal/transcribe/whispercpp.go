package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/echoscribe/internal/logger"
	"github.com/nguyentantai21042004/echoscribe/pkg/executor"
)

type implWhisperCpp struct {
	binaryPath string
	modelPath  string
	language   string
	prompt     string
	threads    int
	executor   executor.Executor
	logger     logger.Logger
}

// cppOutput is the document whisper.cpp writes with -oj.
type cppOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func (w *implWhisperCpp) Name() string { return "whisper.cpp" }

func (w *implWhisperCpp) Transcribe(ctx context.Context, audioPath string) (Transcript, error) {
	// whisper.cpp appends .json to the prefix
	prefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	jsonPath := prefix + ".json"
	defer os.Remove(jsonPath)

	w.logger.Info(ctx, "Starting transcription with %d threads: %s", w.threads, audioPath)

	// -l pins the language; there is no auto-detect
	args := []string{
		"-m", w.modelPath,
		"-f", audioPath,
		"-l", w.language,
		"-t", strconv.Itoa(w.threads),
		"-oj",
		"-of", prefix,
	}
	if w.prompt != "" {
		args = append(args, "--prompt", w.prompt)
	}

	if _, err := w.executor.Execute(ctx, w.binaryPath, args...); err != nil {
		return Transcript{}, fmt.Errorf("%w: whisper.cpp: %w", ErrTranscription, err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: read whisper output: %w", ErrTranscription, err)
	}

	var out cppOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Transcript{}, fmt.Errorf("%w: decode whisper output: %w", ErrTranscription, err)
	}

	t := Transcript{Language: out.Result.Language}
	if t.Language == "" {
		t.Language = w.language
	}
	for _, seg := range out.Transcription {
		t.Segments = append(t.Segments, Segment{
			Text:  seg.Text,
			Start: time.Duration(seg.Offsets.From) * time.Millisecond,
			End:   time.Duration(seg.Offsets.To) * time.Millisecond,
		})
	}

	if err := validateSegments(t.Segments); err != nil {
		return Transcript{}, err
	}

	w.logger.Info(ctx, "Transcription completed: %d segments", len(t.Segments))
	return t, nil
}
