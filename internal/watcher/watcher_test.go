package watcher

import "testing"

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"clip.mp4", true},
		{"clip.MOV", true},
		{"clip.mkv", true},
		{"clip.webm", true},
		{"notes.txt", false},
		{"clip.mp4.part", false},
	}

	for _, tt := range tests {
		if got := isVideoFile(tt.path); got != tt.want {
			t.Errorf("isVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
