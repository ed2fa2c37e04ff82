// Package language holds the fixed set of selectable language codes
// and helpers to normalize user-supplied language names.
package language

import (
	"regexp"
	"strings"
)

// Default is the selectable set offered by the upload form, in
// display order.
var Default = []string{"en", "ta", "fr", "es", "de", "zh", "hi"}

var nameToCode = map[string]string{
	"english":    "en",
	"tamil":      "ta",
	"french":     "fr",
	"spanish":    "es",
	"german":     "de",
	"chinese":    "zh",
	"hindi":      "hi",
	"portuguese": "pt",
	"italian":    "it",
	"japanese":   "ja",
	"russian":    "ru",
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize maps a language name or code to a lowercase ISO-style
// code: full names are looked up, anything else is lowercased with
// non-alphanumeric characters stripped.
func Normalize(lang string) string {
	lower := strings.ToLower(strings.TrimSpace(lang))

	if code, ok := nameToCode[lower]; ok {
		return code
	}

	return nonAlnumRe.ReplaceAllString(lower, "")
}

// Supported reports whether code is in the given selectable set.
func Supported(code string, set []string) bool {
	for _, c := range set {
		if c == code {
			return true
		}
	}
	return false
}

// Label returns the display label for a code, e.g. "fr" -> "FR".
func Label(code string) string {
	return strings.ToUpper(code)
}
