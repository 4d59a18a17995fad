package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Summary     SummaryConfig     `yaml:"summary"`
	Subtitle    SubtitleConfig    `yaml:"subtitle"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Watcher     WatcherConfig     `yaml:"watcher"`
	Report      ReportConfig      `yaml:"report"`
	Metrics     MetricsConfig     `yaml:"metrics"`

	// Secrets are read from the environment, never from the YAML file.
	Secrets Secrets `yaml:"-"`
}

// WhisperConfig selects and tunes the speech-to-text backend.
// Backend "cpp" shells out to whisper.cpp; "http" calls an
// OpenAI-compatible /v1/audio/transcriptions endpoint.
type WhisperConfig struct {
	Backend    string        `yaml:"backend"`
	BinaryPath string        `yaml:"binary_path"`
	ModelPath  string        `yaml:"model_path"`
	URL        string        `yaml:"url"`
	Model      string        `yaml:"model"`
	Language   string        `yaml:"language"`
	Prompt     string        `yaml:"prompt"`
	Threads    int           `yaml:"threads"`
	Timeout    time.Duration `yaml:"timeout"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	// ProbePath defaults to the ffprobe next to BinaryPath.
	ProbePath  string `yaml:"probe_path"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type SummaryConfig struct {
	MinLength     int `yaml:"min_length"`
	MaxLength     int `yaml:"max_length"`
	MinInputWords int `yaml:"min_input_words"`
}

type SubtitleConfig struct {
	Format string        `yaml:"format"`
	Window time.Duration `yaml:"window"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type WatcherConfig struct {
	SettleTimeout time.Duration `yaml:"settle_timeout"`
}

type ReportConfig struct {
	Docx bool `yaml:"docx"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

func (c *Config) Validate() error {
	if c.Whisper.Backend == "" {
		c.Whisper.Backend = "cpp"
	}
	switch c.Whisper.Backend {
	case "cpp":
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
	case "http":
		if c.Whisper.URL == "" {
			return fmt.Errorf("whisper.url is required")
		}
	default:
		return fmt.Errorf("whisper.backend must be cpp or http, got %q", c.Whisper.Backend)
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Summary.MinLength > 0 && c.Summary.MaxLength > 0 && c.Summary.MinLength > c.Summary.MaxLength {
		return fmt.Errorf("summary.min_length (%d) exceeds summary.max_length (%d)",
			c.Summary.MinLength, c.Summary.MaxLength)
	}

	c.Subtitle.Format = strings.ToLower(c.Subtitle.Format)
	switch c.Subtitle.Format {
	case "":
		c.Subtitle.Format = "srt"
	case "srt", "vtt":
	default:
		return fmt.Errorf("subtitle.format must be srt or vtt, got %q", c.Subtitle.Format)
	}

	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Whisper.Timeout == 0 {
		c.Whisper.Timeout = 10 * time.Minute
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.FFmpeg.Channels == 0 {
		c.FFmpeg.Channels = 1
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Summary.MinLength == 0 {
		c.Summary.MinLength = 20
	}
	if c.Summary.MaxLength == 0 {
		c.Summary.MaxLength = 60
	}
	if c.Summary.MinInputWords == 0 {
		c.Summary.MinInputWords = 5
	}
	if c.Subtitle.Window == 0 {
		c.Subtitle.Window = 2 * time.Second
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Watcher.SettleTimeout == 0 {
		c.Watcher.SettleTimeout = 30 * time.Second
	}

	return nil
}
