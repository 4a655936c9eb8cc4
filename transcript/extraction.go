package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ytscribe/language"
	"ytscribe/storage"
)

// defaultDownloadAttempts is the fixed budget for audio downloads. Each
// attempt uses a different connection configuration.
const defaultDownloadAttempts = 3

// AudioDownloader performs one audio download attempt. The attempt
// number selects the connection configuration.
type AudioDownloader interface {
	Download(ctx context.Context, videoID, destPath string, attempt int) error
}

// Transcriber converts a local audio file to text. A non-empty langHint
// skips the engine's own language detection.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, langHint string) (string, error)
}

// extractor drives the audio extraction fallback: bounded download
// attempts, transcription, and immediate artifact cleanup.
type extractor struct {
	downloader  AudioDownloader
	transcriber Transcriber
	store       *storage.Store
	detect      DetectFunc
	attempts    int
	logger      *slog.Logger
}

// run downloads the video's audio and transcribes it. Errors wrap
// ErrDownloadExhausted, ErrTranscription, or ErrEmptyTranscription so
// the aggregator can tell the three failure modes apart.
func (ex *extractor) run(ctx context.Context, videoID, hint string) (*Outcome, error) {
	artifact := ex.store.Create(videoID)

	var lastErr error
	downloaded := false
	for attempt := 0; attempt < ex.attempts; attempt++ {
		err := ex.downloader.Download(ctx, videoID, artifact.Path, attempt)
		if err == nil {
			downloaded = true
			break
		}
		lastErr = err
		ex.logger.Debug("audio download attempt failed",
			"video_id", videoID, "attempt", attempt+1, "error", err)
	}
	if !downloaded {
		// A failed attempt can still leave a zero-byte or partial file
		// at the artifact path.
		ex.store.Remove(artifact)
		return nil, fmt.Errorf("%w after %d attempts: %v", ErrDownloadExhausted, ex.attempts, lastErr)
	}

	// An unrecognized hint means no hint: the engine auto-detects.
	langHint, hinted := language.Canonical(hint)
	if !hinted {
		langHint = ""
	}

	text, err := ex.transcriber.Transcribe(ctx, artifact.Path, langHint)

	// The artifact is removed before the outcome is built, success or
	// failure. The sweep covers anything this call misses.
	ex.store.Remove(artifact)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: video %s", ErrEmptyTranscription, videoID)
	}

	lang := langHint
	if !hinted {
		lang = ex.detect(text)
	}

	return &Outcome{
		VideoID:  videoID,
		Text:     text,
		Language: lang,
		Source:   SourceTranscription,
	}, nil
}
