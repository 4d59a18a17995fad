package processor

import (
	"fmt"

	"github.com/nguyentantai21042004/echoscribe/internal/transcribe"
)

// FailureSentinel replaces every text output of a failed run.
const FailureSentinel = "Error"

// Pipeline stages, in execution order. Summarize and Compose run concurrently.
const (
	StageStart        = "start"
	StageCopyInput    = "copy_input"
	StageExtractAudio = "extract_audio"
	StageTranscribe   = "transcribe"
	StageRestore      = "restore"
	StageSummarize    = "summarize"
	StageCompose      = "compose"
	StagePersist      = "persist"
)

// StageError identifies the stage that failed and the kind of failure.
type StageError struct {
	Stage string
	Kind  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed [%s]: %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Result is the outcome of one run. On failure only RunID and Err are set.
type Result struct {
	RunID string

	RawText        string
	PunctuatedText string
	Summary        string

	TranscriptFile string
	SummaryFile    string
	SubtitleFile   string
	ReportFile     string

	Segments []transcribe.Segment

	Err *StageError
}

func (r *Result) OK() bool { return r.Err == nil }

// Output is the six-value tuple handed to callers.
type Output struct {
	RawText            string  `json:"raw_text"`
	PunctuatedText     string  `json:"punctuated_text"`
	Summary            string  `json:"summary"`
	PunctuatedTextFile *string `json:"punctuated_text_file"`
	SummaryFile        *string `json:"summary_file"`
	SubtitleFile       *string `json:"subtitle_file"`
}

// FailureOutput is what every failed run renders to.
func FailureOutput() Output {
	return Output{
		RawText:        FailureSentinel,
		PunctuatedText: FailureSentinel,
		Summary:        FailureSentinel,
	}
}

func (r *Result) Output() Output {
	if !r.OK() {
		return FailureOutput()
	}
	transcript, summary, subtitle := r.TranscriptFile, r.SummaryFile, r.SubtitleFile
	return Output{
		RawText:            r.RawText,
		PunctuatedText:     r.PunctuatedText,
		Summary:            r.Summary,
		PunctuatedTextFile: &transcript,
		SummaryFile:        &summary,
		SubtitleFile:       &subtitle,
	}
}
