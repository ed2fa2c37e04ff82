package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/subtitle-flow/internal/subtitle"
)

// Transcriber converts an audio file into ordered, time-aligned
// speech segments. The language hint constrains decoding; a wrong
// hint degrades quality but never raises an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, lang string) ([]subtitle.Segment, error)
}
