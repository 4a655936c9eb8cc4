package youtube

import (
	"fmt"
	"strings"
)

// Format represents a supported transcript output format.
type Format string

const (
	// FormatText is plain text, one caption line per row.
	FormatText Format = "txt"
	// FormatSRT is the SubRip format.
	FormatSRT Format = "srt"
	// FormatVTT is the WebVTT format.
	FormatVTT Format = "vtt"
)

// ParseOutputFormat validates a format string. An empty string defaults to
// plain text.
func ParseOutputFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatSRT:
		return FormatSRT, nil
	case FormatVTT:
		return FormatVTT, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// Convert renders caption entries in the requested format.
func Convert(entries []CaptionEntry, format Format) (string, error) {
	switch format {
	case FormatText:
		return PlainText(entries), nil
	case FormatSRT:
		return toSRT(entries), nil
	case FormatVTT:
		return toVTT(entries), nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// PlainText joins caption entries into newline-separated text, the shape
// transcripts are returned in by default.
func PlainText(entries []CaptionEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Text == "" {
			continue
		}
		lines = append(lines, entry.Text)
	}
	return strings.Join(lines, "\n")
}

// toSRT converts entries to the SubRip format.
func toSRT(entries []CaptionEntry) string {
	var sb strings.Builder
	for i, entry := range entries {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatSRTTime(entry.Start), formatSRTTime(entry.Start+entry.Duration)))
		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// toVTT converts entries to the WebVTT format.
func toVTT(entries []CaptionEntry) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatVTTTime(entry.Start), formatVTTTime(entry.Start+entry.Duration)))
		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// formatSRTTime renders seconds as HH:MM:SS,mmm.
func formatSRTTime(seconds float64) string {
	h, m, s, ms := splitTime(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// formatVTTTime renders seconds as HH:MM:SS.mmm.
func formatVTTTime(seconds float64) string {
	h, m, s, ms := splitTime(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

func splitTime(seconds float64) (h, m, s, ms int) {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	ms = int((seconds - float64(total)) * 1000)
	h = total / 3600
	m = (total % 3600) / 60
	s = total % 60
	return h, m, s, ms
}
