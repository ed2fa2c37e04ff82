package player

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestDataURI(t *testing.T) {
	uri := DataURI("text/vtt", []byte("WEBVTT\n\n"))

	if !strings.HasPrefix(uri, "data:text/vtt;base64,") {
		t.Fatalf("uri = %q", uri)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:text/vtt;base64,"))
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if string(decoded) != "WEBVTT\n\n" {
		t.Errorf("decoded = %q", decoded)
	}
}

func TestVideoMIME(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"clip.mp4", "video/mp4"},
		{"clip.MOV", "video/quicktime"},
		{"clip.mkv", "video/x-matroska"},
		{"clip.webm", "video/webm"},
		{"clip.unknown", "video/mp4"},
	}

	for _, tt := range tests {
		if got := VideoMIME(tt.filename); got != tt.want {
			t.Errorf("VideoMIME(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestBuild(t *testing.T) {
	html, err := Build("clip.mp4", []byte("fake video"), []byte("WEBVTT\n\n"), "fr")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	out := string(html)
	if !strings.Contains(out, `srclang="fr"`) {
		t.Errorf("missing srclang: %s", out)
	}
	if !strings.Contains(out, `label="FR"`) {
		t.Errorf("missing label: %s", out)
	}
	if !strings.Contains(out, "data:video/mp4;base64,") {
		t.Errorf("missing video data URI: %s", out)
	}
	if !strings.Contains(out, "data:text/vtt;base64,") {
		t.Errorf("missing track data URI: %s", out)
	}
	// html/template must not have neutered the data URIs.
	if strings.Contains(out, "ZgotmplZ") {
		t.Errorf("template escaped the data URI: %s", out)
	}
}

func TestBuildPage(t *testing.T) {
	fragment, err := Build("clip.webm", []byte("v"), []byte("WEBVTT\n\n"), "de")
	if err != nil {
		t.Fatal(err)
	}

	page := BuildPage("My <Clip>", fragment)
	if !strings.Contains(page, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	if !strings.Contains(page, "My &lt;Clip&gt;") {
		t.Errorf("title not escaped: %s", page)
	}
	if !strings.Contains(page, "<video") {
		t.Error("missing video element")
	}
}
