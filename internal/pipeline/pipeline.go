package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/subtitle-flow/internal/subtitle"
	"github.com/nguyentantai21042004/subtitle-flow/internal/translator"
)

// Run executes the four stages in order. All intermediate files live
// in a per-job scratch directory that is removed on every exit path,
// success or failure.
func (p *implPipeline) Run(ctx context.Context, job Job) (*Result, error) {
	startTime := time.Now()

	p.logger.Info(ctx, "Starting job: %s (%s -> %s)", job.VideoPath, job.SourceLang, job.TargetLang)

	scratch := filepath.Join(p.cfg.Paths.Temp, "job-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return nil, stageErr(StageExtract, fmt.Errorf("create scratch dir: %w", err))
	}
	defer p.removeScratch(ctx, scratch)

	// Stage 1: strip the audio track.
	audioPath := filepath.Join(scratch, "audio"+audioExt(p.cfg.FFmpeg.AudioCodec))
	if err := p.extractor.Extract(ctx, job.VideoPath, audioPath); err != nil {
		return nil, stageErr(StageExtract, err)
	}

	// Stage 2: speech to timed segments.
	segments, err := p.transcriber.Transcribe(ctx, audioPath, job.SourceLang)
	if err != nil {
		return nil, stageErr(StageTranscribe, err)
	}
	p.logger.Info(ctx, "Transcribed %d segments", len(segments))

	// Stage 3: translate each segment, timing untouched.
	translated, err := translator.TranslateAll(ctx, p.translator, segments, job.SourceLang, job.TargetLang, p.cfg.Performance.MaxConcurrent)
	if err != nil {
		var segErr *translator.SegmentError
		if errors.As(err, &segErr) {
			return nil, &StageError{Stage: StageTranslate, SegmentIndex: segErr.Index, Err: segErr.Err}
		}
		return nil, stageErr(StageTranslate, err)
	}
	if len(translated) != len(segments) {
		return nil, stageErr(StageTranslate, fmt.Errorf("segment count changed: %d in, %d out", len(segments), len(translated)))
	}

	// Stage 4: emit the WebVTT track.
	if err := subtitle.WriteFile(job.SubtitlePath, translated); err != nil {
		return nil, stageErr(StageEmit, err)
	}

	elapsed := time.Since(startTime).Round(time.Millisecond)
	p.logger.Info(ctx, "Job completed in %s: %s (%d cues)", elapsed, job.SubtitlePath, len(translated))

	return &Result{
		SubtitlePath: job.SubtitlePath,
		Segments:     translated,
		Elapsed:      elapsed.String(),
	}, nil
}

func (p *implPipeline) removeScratch(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to remove scratch dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Removed scratch dir: %s", dir)
	}
}

// audioExt picks a container extension matching the configured codec
// so ffmpeg infers the right output format.
func audioExt(codec string) string {
	switch codec {
	case "mp3", "libmp3lame":
		return ".mp3"
	case "aac":
		return ".m4a"
	default:
		return ".wav"
	}
}
