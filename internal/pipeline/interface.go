package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/subtitle-flow/internal/subtitle"
)

// Job associates one uploaded video with a language pair for a single
// pipeline run. Nothing about it persists across runs.
type Job struct {
	VideoPath    string
	SourceLang   string
	TargetLang   string
	SubtitlePath string // destination for the WebVTT track
}

// Result reports what one run produced.
type Result struct {
	SubtitlePath string
	Segments     []subtitle.Segment // translated, in source order
	Elapsed      string
}

// Pipeline runs the extract -> transcribe -> translate -> emit chain
// for one job.
type Pipeline interface {
	Run(ctx context.Context, job Job) (*Result, error)
}
