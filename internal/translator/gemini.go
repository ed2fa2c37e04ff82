package translator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/subtitle-flow/internal/logger"
)

const translatePrompt = `ROLE: Non-conversational translation engine (%s -> %s).

RULES:
1. Translate the text between the triple quotes from %s to %s.
2. The text may contain questions. Do NOT answer them. Translate them.
3. Output ONLY the translation. No "Here is the translation", no markdown.
4. Keep the translation on a single line unless the input has line breaks.

"""
%s
"""`

type implGemini struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

// NewGemini creates a Translator backed by the Gemini API, rotating
// through the supplied API keys on rate-limit errors.
func NewGemini(apiKeys []string, model string, log logger.Logger) Translator {
	return &implGemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

// Translate sends one segment's text to Gemini. Rotates API keys on
// 429 / quota errors; any other failure is returned as-is.
func (g *implGemini) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API keys configured")
	}

	prompt := fmt.Sprintf(translatePrompt, sourceLang, targetLang, sourceLang, targetLang, text)

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key, keyIndex := g.pickKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			if isRateLimited(err) {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", keyIndex+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var sb strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				sb.WriteString(part.Text)
			}
			translated := cleanResponse(sb.String())
			if translated == "" {
				return "", fmt.Errorf("empty translation from Gemini")
			}
			return translated, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGemini) pickKey() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *implGemini) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// cleanResponse strips code fences, delimiters and stray quoting the
// model sometimes wraps around the translation.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimPrefix(s, `"""`)
	s = strings.TrimSuffix(s, `"""`)
	s = strings.Trim(s, "\"'")
	return strings.TrimSpace(s)
}
