package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/echoscribe/internal/artifact"
	"github.com/nguyentantai21042004/echoscribe/internal/config"
	"github.com/nguyentantai21042004/echoscribe/internal/gemini"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
	"github.com/nguyentantai21042004/echoscribe/internal/media"
	"github.com/nguyentantai21042004/echoscribe/internal/metrics"
	"github.com/nguyentantai21042004/echoscribe/internal/processor"
	"github.com/nguyentantai21042004/echoscribe/internal/punctuate"
	"github.com/nguyentantai21042004/echoscribe/internal/report"
	"github.com/nguyentantai21042004/echoscribe/internal/subtitle"
	"github.com/nguyentantai21042004/echoscribe/internal/summarizer"
	"github.com/nguyentantai21042004/echoscribe/internal/transcribe"
	"github.com/nguyentantai21042004/echoscribe/internal/watcher"
	"github.com/nguyentantai21042004/echoscribe/pkg/executor"
)

const usage = `Usage:
  echoscribe [-config config.yaml] run VIDEO
  echoscribe [-config config.yaml] watch
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if len(cfg.Secrets.GeminiAPIKeys) == 0 {
		log.Warn(ctx, "GEMINI_API_KEYS is not set; punctuation and summary stages will fail")
	}

	proc, err := buildProcessor(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		os.Exit(1)
	}

	switch args[0] {
	case "run":
		if len(args) != 2 {
			flag.Usage()
			os.Exit(2)
		}
		os.Exit(runOnce(ctx, proc, args[1]))
	case "watch":
		if err := watch(ctx, cfg, proc, log); err != nil {
			log.Error(ctx, "Watcher error: %v", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// buildProcessor constructs every stage once; runs share them.
func buildProcessor(cfg *config.Config, log logger.Logger) (processor.Processor, error) {
	exec := executor.New()

	engine, err := transcribe.New(cfg, exec, log)
	if err != nil {
		return nil, err
	}

	composer, err := subtitle.New(subtitle.Options{
		Window: cfg.Subtitle.Window,
		Format: cfg.Subtitle.Format,
	})
	if err != nil {
		return nil, err
	}

	gen := gemini.New(gemini.Config{
		APIKeys: cfg.Secrets.GeminiAPIKeys,
		Model:   cfg.Gemini.Model,
	}, log)

	deps := processor.Dependencies{
		Store: artifact.New(artifact.Options{
			TempDir:     cfg.Paths.Temp,
			OutputDir:   cfg.Paths.Output,
			SubtitleExt: composer.Ext(),
		}),
		Extractor: media.New(media.Options{
			BinaryPath: cfg.FFmpeg.BinaryPath,
			ProbePath:  cfg.FFmpeg.ProbePath,
			SampleRate: cfg.FFmpeg.SampleRate,
			Channels:   cfg.FFmpeg.Channels,
		}, exec, log),
		Engine:   engine,
		Restorer: punctuate.New(gen, log),
		Summarizer: summarizer.New(gen, summarizer.Options{
			MinLength:     cfg.Summary.MinLength,
			MaxLength:     cfg.Summary.MaxLength,
			MinInputWords: cfg.Summary.MinInputWords,
		}, log),
		Composer: composer,
	}
	if cfg.Report.Docx {
		deps.Report = report.NewDocx(log)
	}

	return processor.New(cfg, deps, log), nil
}

// runOnce prints the output tuple as JSON and returns the exit code.
func runOnce(ctx context.Context, proc processor.Processor, videoPath string) int {
	res := proc.Run(ctx, videoPath)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Output()); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		return 1
	}

	if !res.OK() {
		fmt.Fprintf(os.Stderr, "%v\n", res.Err)
		return 1
	}
	return 0
}

func watch(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger) error {
	log.Info(ctx, "========================================")
	log.Info(ctx, "EchoScribe drop-folder mode")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Error(ctx, "Metrics server error: %v", err)
			}
		}()
		log.Info(ctx, "Metrics: http://%s/metrics", cfg.Metrics.Addr)
	}

	w, err := watcher.New(watcher.Options{
		InputDir:      cfg.Paths.Input,
		SettleTimeout: cfg.Watcher.SettleTimeout,
		ScanExisting:  true,
	}, proc.Process, log)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Transcription: %s (%s)", cfg.Whisper.Backend, cfg.Whisper.Language)
	log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info(ctx, "EchoScribe stopped")
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
