// Package subtitle holds the timed-text data model and the WebVTT codec.
package subtitle

// Segment is a time-bounded span of speech with its text.
// Translated segments share the same shape: the text is replaced,
// the timing fields are copied verbatim.
type Segment struct {
	Start float64 `json:"start"` // seconds, >= 0
	End   float64 `json:"end"`   // seconds, > Start
	Text  string  `json:"text"`
}
