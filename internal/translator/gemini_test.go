package translator

import (
	"context"
	"errors"
	"testing"

	"github.com/nguyentantai21042004/subtitle-flow/internal/logger"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Bonjour", "Bonjour"},
		{"surrounding whitespace", "  Bonjour \n", "Bonjour"},
		{"code fence", "```text\nBonjour\n```", "Bonjour"},
		{"bare fence", "```\nBonjour\n```", "Bonjour"},
		{"triple quotes", `"""Bonjour"""`, "Bonjour"},
		{"wrapping quotes", `"Bonjour"`, "Bonjour"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanResponse(tt.in); got != tt.want {
				t.Errorf("cleanResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"http 429", errors.New("googleapi: Error 429: too many requests"), true},
		{"quota", errors.New("quota exceeded for model"), true},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{"other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRateLimited(tt.err); got != tt.want {
				t.Errorf("isRateLimited(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRotateKey(t *testing.T) {
	g := NewGemini([]string{"a", "b", "c"}, "gemini-2.5-flash", logger.New("error")).(*implGemini)

	if key, idx := g.pickKey(); key != "a" || idx != 0 {
		t.Errorf("pickKey() = %q, %d", key, idx)
	}

	g.rotateKey()
	if key, _ := g.pickKey(); key != "b" {
		t.Errorf("after rotate pickKey() = %q, want b", key)
	}

	g.rotateKey()
	g.rotateKey()
	if key, _ := g.pickKey(); key != "a" {
		t.Errorf("rotation should wrap, pickKey() = %q, want a", key)
	}
}

func TestTranslateNoKeys(t *testing.T) {
	g := NewGemini(nil, "gemini-2.5-flash", logger.New("error"))

	_, err := g.Translate(context.Background(), "Hello", "en", "fr")
	if err == nil {
		t.Error("Translate() should fail without API keys")
	}
}
