package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

// videoIDRegex matches a bare 11-character YouTube video ID.
var videoIDRegex = regexp.MustCompile(`^[\w-]{11}$`)

// ExtractVideoID extracts the video ID from a YouTube URL, or returns the
// input unchanged when it already looks like a bare ID. Handles watch URLs,
// youtu.be short links, shorts, and embed URLs.
func ExtractVideoID(urlOrID string) string {
	input := strings.TrimSpace(urlOrID)
	if input == "" {
		return ""
	}

	if !strings.Contains(input, "youtube.com") && !strings.Contains(input, "youtu.be") {
		return input
	}

	u, err := url.Parse(input)
	if err != nil {
		return input
	}

	if strings.Contains(u.Host, "youtu.be") {
		if id := strings.Trim(u.Path, "/"); id != "" {
			return firstPathSegment(id)
		}
		return input
	}

	// watch?v=ID
	if id := u.Query().Get("v"); id != "" {
		return id
	}

	// /shorts/ID, /embed/ID, /live/ID
	for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
		if rest, ok := strings.CutPrefix(u.Path, prefix); ok && rest != "" {
			return firstPathSegment(rest)
		}
	}

	return input
}

// IsValidVideoID reports whether s looks like a YouTube video ID.
func IsValidVideoID(s string) bool {
	return videoIDRegex.MatchString(s)
}

func firstPathSegment(p string) string {
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}
