package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrNoAudio reports that ffmpeg ran but produced no usable audio,
// typically because the input has no audio stream.
var ErrNoAudio = errors.New("extracted audio file is missing or empty")

// Extract strips the audio track from videoPath into audioPath using
// ffmpeg, overwriting any existing file at the destination. The output
// is verified to be non-empty so a silent ffmpeg failure cannot leak
// into transcription.
func (e *implExtractor) Extract(ctx context.Context, videoPath, audioPath string) error {
	e.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, audioPath)

	// -vn drops the video stream entirely; codec, sample rate and
	// channel count come from config (defaults are what the speech
	// model wants: 16kHz mono PCM).
	args := []string{
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", e.cfg.FFmpeg.AudioCodec,
		"-ar", strconv.Itoa(e.cfg.FFmpeg.SampleRate),
		"-ac", strconv.Itoa(e.cfg.FFmpeg.Channels),
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	fi, err := os.Stat(audioPath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoAudio, audioPath)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrNoAudio, audioPath)
	}

	e.logger.Info(ctx, "Audio extracted successfully: %s (%d bytes)", audioPath, fi.Size())
	return nil
}
