// Package export writes translated transcripts as .docx documents.
package export

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"

	"github.com/nguyentantai21042004/subtitle-flow/internal/subtitle"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

// TranscriptDocx writes the translated segments as a clean transcript
// document: a bold title followed by one paragraph per cue text.
// Consecutive duplicate lines (rolling captions) are collapsed.
func TranscriptDocx(title string, segments []subtitle.Segment, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	titlePara := doc.AddParagraph("")
	titlePara.AddText(title).Font(fontName).Size(titleSize).Color("000000").Bold(true)
	doc.AddParagraph("")

	prev := ""
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" || text == prev {
			continue
		}
		prev = text

		p := doc.AddParagraph("")
		p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}
