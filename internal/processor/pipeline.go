package processor

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/echoscribe/internal/artifact"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
	"github.com/nguyentantai21042004/echoscribe/internal/metrics"
	"github.com/nguyentantai21042004/echoscribe/internal/report"
)

// runState carries intermediate values between stages of one run.
type runState struct {
	run    artifact.Run
	result *Result
	source string

	video    artifact.Handle
	audio    artifact.Handle
	subtitle []byte
}

// Run executes CopyInput → ExtractAudio → Transcribe → Restore →
// {Summarize, Compose} → Persist. Any failure discards every output.
func (p *implProcessor) Run(ctx context.Context, videoPath string) *Result {
	if err := p.sem.acquire(ctx); err != nil {
		return p.fail(ctx, &Result{}, stageErr(StageStart, err))
	}
	defer p.sem.release()

	startTime := time.Now()

	run, err := p.deps.Store.Begin(ctx)
	if err != nil {
		return p.fail(ctx, &Result{}, stageErr(StageStart, err))
	}
	ctx = logger.WithRunID(ctx, run.ID())

	st := &runState{run: run, result: &Result{RunID: run.ID()}}
	keepOutputs := false
	defer func() {
		if err := run.Close(keepOutputs); err != nil {
			p.logger.Warn(ctx, "Failed to clean up run artifacts: %v", err)
		}
	}()

	p.logger.Info(ctx, "Starting pipeline: %s", videoPath)

	steps := []struct {
		stage string
		fn    func(context.Context, *runState) error
	}{
		{StageCopyInput, func(ctx context.Context, st *runState) error { return p.copyInput(ctx, st, videoPath) }},
		{StageExtractAudio, p.extractAudio},
		{StageTranscribe, p.transcribe},
		{StageRestore, p.restore},
		{StageSummarize, p.summarizeAndCompose},
		{StagePersist, p.persist},
	}

	for _, step := range steps {
		if err := p.timed(ctx, step.stage, st, step.fn); err != nil {
			return p.fail(ctx, st.result, stageErr(step.stage, err))
		}
	}

	keepOutputs = true
	metrics.RecordSuccess()
	p.logger.Info(ctx, "Pipeline completed in %s", time.Since(startTime))
	return st.result
}

func (p *implProcessor) Transcribe(ctx context.Context, videoPath string) Output {
	return p.Run(ctx, videoPath).Output()
}

func (p *implProcessor) timed(ctx context.Context, stage string, st *runState, fn func(context.Context, *runState) error) error {
	start := time.Now()
	err := fn(ctx, st)
	metrics.ObserveStage(stage, time.Since(start))
	if err == nil {
		p.logger.Debug(ctx, "Stage %s done in %s", stage, time.Since(start))
	}
	return err
}

// fail logs the stage error and returns a result holding nothing but the run id and the error.
func (p *implProcessor) fail(ctx context.Context, res *Result, se *StageError) *Result {
	p.logger.Error(ctx, "Pipeline failed at %s [%s]: %v", se.Stage, se.Kind, se.Err)
	metrics.RecordFailure(se.Stage, se.Kind)
	return &Result{RunID: res.RunID, Err: se}
}

func (p *implProcessor) copyInput(ctx context.Context, st *runState, videoPath string) error {
	h, err := st.run.Allocate(artifact.KindVideo)
	if err != nil {
		return err
	}
	if err := st.run.Import(h, videoPath); err != nil {
		return err
	}
	st.video = h
	st.source = videoPath
	return nil
}

func (p *implProcessor) extractAudio(ctx context.Context, st *runState) error {
	h, err := st.run.Allocate(artifact.KindAudio)
	if err != nil {
		return err
	}
	if err := p.deps.Extractor.Extract(ctx, st.video.Path, h.Path); err != nil {
		return err
	}
	st.audio = h
	p.releaseQuietly(ctx, st.run, st.video)
	return nil
}

func (p *implProcessor) transcribe(ctx context.Context, st *runState) error {
	t, err := p.deps.Engine.Transcribe(ctx, st.audio.Path)
	if err != nil {
		return err
	}
	p.releaseQuietly(ctx, st.run, st.audio)

	st.result.Segments = t.Segments
	st.result.RawText = t.Text()
	p.logger.Info(ctx, "Transcribed %d segments with %s", len(t.Segments), p.deps.Engine.Name())
	return nil
}

func (p *implProcessor) restore(ctx context.Context, st *runState) error {
	text, err := p.deps.Restorer.Restore(ctx, st.result.RawText)
	if err != nil {
		return err
	}
	st.result.PunctuatedText = text
	return nil
}

// summarizeAndCompose runs the two independent branches on the punctuated text.
func (p *implProcessor) summarizeAndCompose(ctx context.Context, st *runState) error {
	text := st.result.PunctuatedText
	var summary string
	var encoded []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := p.deps.Summarizer.Summarize(gctx, text)
		if err != nil {
			return stageErr(StageSummarize, err)
		}
		summary = out
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		defer func() { metrics.ObserveStage(StageCompose, time.Since(start)) }()

		track, err := p.deps.Composer.Compose(text)
		if err != nil {
			return stageErr(StageCompose, err)
		}
		data, err := p.deps.Composer.Encode(track)
		if err != nil {
			return stageErr(StageCompose, err)
		}
		encoded = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	st.result.Summary = summary
	st.subtitle = encoded
	return nil
}

func (p *implProcessor) persist(ctx context.Context, st *runState) error {
	outputs := []struct {
		kind    artifact.Kind
		content []byte
		dst     *string
	}{
		{artifact.KindTranscript, []byte(st.result.PunctuatedText), &st.result.TranscriptFile},
		{artifact.KindSummary, []byte(st.result.Summary), &st.result.SummaryFile},
		{artifact.KindSubtitle, st.subtitle, &st.result.SubtitleFile},
	}

	for _, o := range outputs {
		h, err := st.run.Allocate(o.kind)
		if err != nil {
			return err
		}
		if _, err := st.run.Persist(h, o.content); err != nil {
			return err
		}
		*o.dst = h.Path
	}

	if p.deps.Report != nil {
		p.writeReport(ctx, st)
	}
	return nil
}

// writeReport is best effort: a report failure never fails the run.
func (p *implProcessor) writeReport(ctx context.Context, st *runState) {
	h, err := st.run.Allocate(artifact.KindReport)
	if err != nil {
		p.logger.Warn(ctx, "Skipping report: %v", err)
		return
	}

	err = p.deps.Report.Write(ctx, report.Report{
		Title:      filepath.Base(st.source),
		Summary:    st.result.Summary,
		Transcript: st.result.PunctuatedText,
		CreatedAt:  time.Now(),
	}, h.Path)
	if err != nil {
		p.logger.Warn(ctx, "Failed to write report: %v", err)
		p.releaseQuietly(ctx, st.run, h)
		return
	}
	st.result.ReportFile = h.Path
}

func (p *implProcessor) releaseQuietly(ctx context.Context, run artifact.Run, h artifact.Handle) {
	if err := run.Release(h); err != nil && !errors.Is(err, artifact.ErrReleased) {
		p.logger.Warn(ctx, "Failed to release %s: %v", h.Path, err)
	}
}
