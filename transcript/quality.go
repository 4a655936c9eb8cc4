package transcript

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// minUsableLength is the minimum stripped length for a caption track to
// count as a real transcript. Shorter tracks are placeholders or noise.
const minUsableLength = 50

// placeholderPhrase is emitted by the platform while auto-captions are
// still being generated. Its presence means the track is not done.
const placeholderPhrase = "caption is updating"

// checkQuality decides whether caption text is usable. The reason is
// empty when usable is true.
func checkQuality(text string) (usable bool, reason string) {
	stripped := strings.TrimSpace(text)
	if n := utf8.RuneCountInString(stripped); n < minUsableLength {
		return false, fmt.Sprintf("caption text too short (%d chars, need %d)", n, minUsableLength)
	}
	if strings.Contains(strings.ToLower(text), placeholderPhrase) {
		return false, "caption track is a placeholder (still updating)"
	}
	return true, ""
}
