// Package player assembles the inline playback fragment: the original
// video and the generated subtitle track are embedded as base64 data
// URIs inside a minimal <video> element. No media content is
// transformed here.
package player

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/subtitle-flow/internal/language"
)

const fragmentTemplate = `<video controls width="640" style="border-radius:10px;" crossorigin="anonymous">
    <source src="{{.VideoSrc}}" type="{{.VideoType}}">
    <track src="{{.TrackSrc}}" kind="subtitles" srclang="{{.Lang}}" label="{{.Label}}" default>
    Your browser does not support the video tag.
</video>`

var fragment = template.Must(template.New("player").Parse(fragmentTemplate))

type fragmentData struct {
	VideoSrc  template.URL
	VideoType string
	TrackSrc  template.URL
	Lang      string
	Label     string
}

// DataURI encodes raw bytes as an inline data URI with the given MIME
// type.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// VideoMIME maps a video filename to its MIME type, defaulting to
// video/mp4 for unknown containers.
func VideoMIME(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	case ".mkv":
		return "video/x-matroska"
	case ".ogv":
		return "video/ogg"
	default:
		return "video/mp4"
	}
}

// Build renders the playback fragment for the given video bytes and
// WebVTT bytes. The subtitle track is declared in the target language.
func Build(videoName string, video, vtt []byte, targetLang string) (template.HTML, error) {
	data := fragmentData{
		VideoSrc:  template.URL(DataURI(VideoMIME(videoName), video)),
		VideoType: VideoMIME(videoName),
		TrackSrc:  template.URL(DataURI("text/vtt", vtt)),
		Lang:      targetLang,
		Label:     language.Label(targetLang),
	}

	var sb strings.Builder
	if err := fragment.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render player fragment: %w", err)
	}

	return template.HTML(sb.String()), nil
}

// BuildPage wraps the fragment in a complete standalone HTML document,
// used by watch mode to drop a playable file next to the subtitles.
func BuildPage(title string, body template.HTML) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%s</title></head>
<body>
%s
</body>
</html>
`, template.HTMLEscapeString(title), body)
}
