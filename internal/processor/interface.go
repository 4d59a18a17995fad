package processor

import "context"

// Processor runs the video-to-text pipeline.
type Processor interface {
	// Run executes every stage for one video and reports the outcome explicitly.
	Run(ctx context.Context, videoPath string) *Result
	// Transcribe is the external entry point; it renders Run's result as Output.
	Transcribe(ctx context.Context, videoPath string) Output
	// Process runs the pipeline for a dropped file and archives the source on success.
	Process(ctx context.Context, videoPath string) error
}
