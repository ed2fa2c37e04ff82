package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// header is the literal first line of every WebVTT file.
const header = "WEBVTT"

// FormatTimestamp converts a non-negative seconds value to the WebVTT
// HH:MM:SS.mmm form. Fractions are truncated, never rounded, so the
// emitted bytes match the reference subtitle output exactly
// (1.9995s -> "00:00:01.999").
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	whole := int64(seconds)
	hrs := whole / 3600
	mins := (whole % 3600) / 60
	secs := whole % 60
	ms := int64(seconds*1000) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hrs, mins, secs, ms)
}

// WriteVTT serializes segments as a WebVTT track: the literal header,
// a blank line, then one cue block per segment in input order.
func WriteVTT(w io.Writer, segments []Segment) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(header + "\n\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, seg := range segments {
		_, err := fmt.Fprintf(bw, "%s --> %s\n%s\n\n",
			FormatTimestamp(seg.Start),
			FormatTimestamp(seg.End),
			seg.Text,
		)
		if err != nil {
			return fmt.Errorf("write cue: %w", err)
		}
	}

	return bw.Flush()
}

// WriteFile writes the segments as a WebVTT file at path, overwriting
// any existing file.
func WriteFile(path string, segments []Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create subtitle file: %w", err)
	}

	if err := WriteVTT(f, segments); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close subtitle file: %w", err)
	}
	return nil
}

// timingRe matches a VTT timing line like
// "00:00:01.234 --> 00:00:03.456", with optional cue settings after
// the second timestamp.
var timingRe = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2})\.(\d{3})`)

// Parse reads a WebVTT track back into segments. Only the timing and
// text payload are kept; cue identifiers, NOTE blocks and metadata
// lines are skipped.
func Parse(r io.Reader) ([]Segment, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return nil, fmt.Errorf("empty input")
	}
	first := strings.TrimPrefix(strings.TrimRight(scanner.Text(), "\r"), "\ufeff")
	if !strings.HasPrefix(first, header) {
		return nil, fmt.Errorf("missing %s header", header)
	}

	var segments []Segment
	var current *Segment

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if m := timingRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				segments = append(segments, *current)
			}
			current = &Segment{
				Start: clockSeconds(m[1], m[2], m[3], m[4]),
				End:   clockSeconds(m[5], m[6], m[7], m[8]),
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			if current != nil {
				segments = append(segments, *current)
				current = nil
			}
			continue
		}

		if current == nil {
			// Cue identifier, NOTE block or metadata line.
			continue
		}

		if current.Text == "" {
			current.Text = line
		} else {
			current.Text += "\n" + line
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read subtitle input: %w", err)
	}
	if current != nil {
		segments = append(segments, *current)
	}

	return segments, nil
}

// ParseFile reads the WebVTT file at path.
func ParseFile(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open subtitle file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// clockSeconds converts already-validated timestamp fields to seconds.
func clockSeconds(hrs, mins, secs, ms string) float64 {
	h, _ := strconv.Atoi(hrs)
	m, _ := strconv.Atoi(mins)
	s, _ := strconv.Atoi(secs)
	f, _ := strconv.Atoi(ms)
	return float64(h)*3600 + float64(m)*60 + float64(s) + float64(f)/1000
}
