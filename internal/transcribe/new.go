package transcribe

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/echoscribe/internal/config"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
	"github.com/nguyentantai21042004/echoscribe/pkg/executor"
)

// New builds the Engine selected by cfg.Whisper.Backend.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Engine, error) {
	w := cfg.Whisper
	switch w.Backend {
	case "", "cpp":
		return &implWhisperCpp{
			binaryPath: w.BinaryPath,
			modelPath:  w.ModelPath,
			language:   w.Language,
			prompt:     w.Prompt,
			threads:    w.Threads,
			executor:   exec,
			logger:     log,
		}, nil
	case "http":
		return newHTTPEngine(w.URL, w.Model, w.Language, w.Prompt, cfg.Secrets.WhisperAPIKey, w.Timeout, log), nil
	}
	return nil, fmt.Errorf("unknown whisper backend %q", w.Backend)
}

func newHTTPEngine(url, model, language, prompt, apiKey string, timeout time.Duration, log logger.Logger) *implHTTP {
	if language == "" {
		language = "en"
	}
	return &implHTTP{
		url:      url,
		model:    model,
		language: language,
		prompt:   prompt,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		logger:   log,
	}
}
