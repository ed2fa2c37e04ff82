package pipeline

import "fmt"

// Stage identifies which pipeline stage failed.
type Stage string

const (
	StageExtract    Stage = "audio extraction"
	StageTranscribe Stage = "transcription"
	StageTranslate  Stage = "translation"
	StageEmit       Stage = "subtitle emission"
)

// StageError wraps a failure with the stage it happened in, so the
// caller can tell the user exactly where the job died. SegmentIndex
// is -1 unless a specific segment is to blame.
type StageError struct {
	Stage        Stage
	SegmentIndex int
	Err          error
}

func (e *StageError) Error() string {
	if e.SegmentIndex >= 0 {
		return fmt.Sprintf("%s failed at segment %d: %v", e.Stage, e.SegmentIndex, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, SegmentIndex: -1, Err: err}
}
