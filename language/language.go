// Package language centralizes language negotiation for transcript requests:
// alias resolution, preference ordering, and best-effort detection.
//
// The supported set is deliberately small (English and Vietnamese). A hint
// that doesn't match a known alias silently falls back to the default
// order rather than raising an error.
package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Canonical language codes.
const (
	English    = "en"
	Vietnamese = "vi"

	// Unknown is reported when detection fails for any reason.
	Unknown = "unknown"
)

// detectPrefixLen caps how much text is fed to the detector. A short prefix
// is enough to classify a transcript and keeps detection cheap.
const detectPrefixLen = 100

// aliases maps user-supplied hints to canonical codes. Both the preference
// resolver and the transcription hint mapper read this table, so the two
// cannot drift apart.
var aliases = map[string]string{
	"en":         English,
	"eng":        English,
	"english":    English,
	"vi":         Vietnamese,
	"vie":        Vietnamese,
	"vietnamese": Vietnamese,
}

// Canonical maps a free-form hint to a supported canonical code.
// Matching is case-insensitive and ignores surrounding whitespace.
// The second return value is false for empty or unrecognized hints.
func Canonical(hint string) (string, bool) {
	code, ok := aliases[strings.ToLower(strings.TrimSpace(hint))]
	return code, ok
}

// Resolve turns an optional hint into the caption search order.
// The result always contains both supported languages exactly once;
// a recognized hint moves its language to the front.
func Resolve(hint string) []string {
	if code, ok := Canonical(hint); ok && code == Vietnamese {
		return []string{Vietnamese, English}
	}
	return []string{English, Vietnamese}
}

// Detect classifies the language of text by its leading prefix, returning
// a two-letter code or Unknown. Detection failure is never an error: callers
// treat the result as advisory only.
func Detect(text string) string {
	prefix := strings.TrimSpace(text)
	if prefix == "" {
		return Unknown
	}
	runes := []rune(prefix)
	if len(runes) > detectPrefixLen {
		prefix = string(runes[:detectPrefixLen])
	}

	info := whatlanggo.Detect(prefix)
	code := info.Lang.Iso6391()
	if code == "" {
		return Unknown
	}
	return code
}
