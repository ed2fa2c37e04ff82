package extractor

import "context"

// Extractor strips the audio track out of a video container into a
// standalone audio file.
type Extractor interface {
	Extract(ctx context.Context, videoPath, audioPath string) error
}
