package translator

import (
	"context"
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/subtitle-flow/internal/subtitle"
)

// SegmentError reports which segment failed to translate.
type SegmentError struct {
	Index int
	Err   error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("translate segment %d: %v", e.Index, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

// TranslateAll translates every segment's text, dispatching up to
// maxConcurrent calls at once and reassembling results in the
// original order. Timing fields are copied verbatim; exactly one
// output segment is produced per input segment. On failure the
// lowest failing index is reported and remaining work is cancelled.
func TranslateAll(ctx context.Context, tr Translator, segments []subtitle.Segment, sourceLang, targetLang string, maxConcurrent int) ([]subtitle.Segment, error) {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make([]subtitle.Segment, len(segments))
	sem := newSemaphore(maxConcurrent)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	firstIdx := -1

	record := func(i int, err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil || i < firstIdx {
			firstErr = err
			firstIdx = i
		}
	}

	for i, seg := range segments {
		if err := sem.acquire(ctx); err != nil {
			record(i, err)
			break
		}

		wg.Add(1)
		go func(i int, seg subtitle.Segment) {
			defer wg.Done()
			defer sem.release()

			text, err := tr.Translate(ctx, seg.Text, sourceLang, targetLang)
			if err != nil {
				record(i, err)
				cancel()
				return
			}

			out[i] = subtitle.Segment{Start: seg.Start, End: seg.End, Text: text}
		}(i, seg)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, &SegmentError{Index: firstIdx, Err: firstErr}
	}

	return out, nil
}
