package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

// Process runs the pipeline for a file picked up by the watcher. On success the
// source video is moved to the archive folder; on failure it stays in place and
// the StageError is returned.
func (p *implProcessor) Process(ctx context.Context, videoPath string) error {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting video processing: %s", videoPath)
	p.logger.Info(ctx, "========================================")

	res := p.Run(ctx, videoPath)
	if !res.OK() {
		return res.Err
	}
	ctx = logger.WithRunID(ctx, res.RunID)

	if err := p.moveToArchived(ctx, videoPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Transcript: %s", res.TranscriptFile)
	p.logger.Info(ctx, "Summary: %s", res.SummaryFile)
	p.logger.Info(ctx, "Subtitle: %s", res.SubtitleFile)
	if res.ReportFile != "" {
		p.logger.Info(ctx, "Report: %s", res.ReportFile)
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}

// moveToArchived moves a processed source video into the archive folder,
// suffixing the name when a file with the same name was archived before.
func (p *implProcessor) moveToArchived(ctx context.Context, videoPath string) error {
	dir := p.cfg.Paths.Archived
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	name := filepath.Base(videoPath)
	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(name)
		dest = filepath.Join(dir, fmt.Sprintf("%s-%d%s", name[:len(name)-len(ext)], time.Now().Unix(), ext))
	}

	p.logger.Info(ctx, "Archiving source: %s -> %s", videoPath, dest)

	if err := os.Rename(videoPath, dest); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
