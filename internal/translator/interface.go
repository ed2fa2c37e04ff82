package translator

import "context"

// Translator converts one text fragment to the target language.
// Implementations never touch segment timing.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
