package transcript

import (
	"context"
	"errors"
	"log/slog"

	"ytscribe/youtube"
)

// CaptionFetcher retrieves the caption track for one video/language pair.
// An empty langCode requests the platform's default track.
type CaptionFetcher interface {
	FetchCaptions(ctx context.Context, videoID, langCode string) ([]youtube.CaptionEntry, error)
}

// DetectFunc classifies the language of text, returning a code or
// language.Unknown. It must not fail.
type DetectFunc func(text string) string

// captionEngine runs caption attempts in preference order plus the final
// auto-detect attempt.
type captionEngine struct {
	fetcher CaptionFetcher
	detect  DetectFunc
	logger  *slog.Logger
}

// run tries each preferred language in order, then the platform default
// track. First usable track wins. When no attempt produces a usable
// track, the returned outcome is nil and the attempt list explains why.
func (ce *captionEngine) run(ctx context.Context, videoID string, prefs []string) (*Outcome, []Attempt) {
	attempts := make([]Attempt, 0, len(prefs)+1)

	for _, lang := range prefs {
		outcome, attempt := ce.tryLanguage(ctx, videoID, lang)
		attempts = append(attempts, attempt)
		if outcome != nil {
			return outcome, attempts
		}
	}

	// One unconstrained attempt for whatever default track the platform
	// picks. Its language is detected from the text, never trusted.
	outcome, attempt := ce.tryLanguage(ctx, videoID, "")
	attempt.Language = AutoLanguage
	attempts = append(attempts, attempt)
	if outcome != nil {
		outcome.Language = ce.detect(outcome.Text)
		return outcome, attempts
	}

	return nil, attempts
}

// tryLanguage issues one caption fetch and applies the quality filter.
func (ce *captionEngine) tryLanguage(ctx context.Context, videoID, lang string) (*Outcome, Attempt) {
	attempt := Attempt{Language: lang}

	entries, err := ce.fetcher.FetchCaptions(ctx, videoID, lang)
	if err != nil {
		if errors.Is(err, youtube.ErrCaptionsNotAvailable) {
			attempt.Status = StatusNotFound
		} else {
			attempt.Status = StatusError
		}
		attempt.Detail = err.Error()
		ce.logger.Debug("caption attempt failed",
			"video_id", videoID, "language", displayLang(lang), "status", attempt.Status)
		return nil, attempt
	}

	text := youtube.PlainText(entries)
	if usable, reason := checkQuality(text); !usable {
		attempt.Status = StatusRejected
		attempt.Detail = reason
		ce.logger.Debug("caption track rejected",
			"video_id", videoID, "language", displayLang(lang), "reason", reason)
		return nil, attempt
	}

	attempt.Status = StatusSuccess
	return &Outcome{
		VideoID:  videoID,
		Text:     text,
		Language: lang,
		Source:   SourceCaptions,
		Entries:  entries,
	}, attempt
}

func displayLang(lang string) string {
	if lang == "" {
		return AutoLanguage
	}
	return lang
}
