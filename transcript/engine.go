package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ytscribe/language"
	"ytscribe/storage"
)

// Config wires the engine's collaborators. Captions, Downloader,
// Transcriber, and Store are required.
type Config struct {
	Captions    CaptionFetcher
	Downloader  AudioDownloader
	Transcriber Transcriber
	Store       *storage.Store

	// Detect classifies transcript language. Nil uses language.Detect.
	Detect DetectFunc
	// DownloadAttempts is the audio download budget. Zero means 3.
	DownloadAttempts int
	// ArtifactMaxAge is the sweep retention window. Zero means 1 hour.
	ArtifactMaxAge time.Duration
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Engine is the top-level acquisition policy: captions first, audio
// extraction when captions fail or the caller forces it. Each path runs
// at most once per request.
type Engine struct {
	captions  *captionEngine
	extractor *extractor
	store     *storage.Store
	maxAge    time.Duration
	logger    *slog.Logger
}

// New creates an engine from the config.
func New(cfg Config) (*Engine, error) {
	if cfg.Captions == nil {
		return nil, fmt.Errorf("transcript: caption fetcher is required")
	}
	if cfg.Downloader == nil {
		return nil, fmt.Errorf("transcript: audio downloader is required")
	}
	if cfg.Transcriber == nil {
		return nil, fmt.Errorf("transcript: transcriber is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("transcript: artifact store is required")
	}

	detect := cfg.Detect
	if detect == nil {
		detect = language.Detect
	}
	attempts := cfg.DownloadAttempts
	if attempts <= 0 {
		attempts = defaultDownloadAttempts
	}
	maxAge := cfg.ArtifactMaxAge
	if maxAge <= 0 {
		maxAge = storage.DefaultMaxAge
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		captions: &captionEngine{
			fetcher: cfg.Captions,
			detect:  detect,
			logger:  logger,
		},
		extractor: &extractor{
			downloader:  cfg.Downloader,
			transcriber: cfg.Transcriber,
			store:       cfg.Store,
			detect:      detect,
			attempts:    attempts,
			logger:      logger,
		},
		store:  cfg.Store,
		maxAge: maxAge,
		logger: logger,
	}, nil
}

// Transcript acquires a transcript for the request. On failure the
// returned error is a *Failure carrying every attempt made.
func (e *Engine) Transcript(ctx context.Context, req Request) (*Outcome, error) {
	videoID := strings.TrimSpace(req.VideoID)
	if videoID == "" {
		return nil, ErrMissingVideoID
	}

	// Crash recovery for artifacts orphaned by earlier runs.
	e.store.Sweep(e.maxAge)

	var attempts []Attempt
	if !req.ForceExtract {
		prefs := language.Resolve(req.Language)
		outcome, captionAttempts := e.captions.run(ctx, videoID, prefs)
		attempts = captionAttempts
		if outcome != nil {
			e.logger.Info("transcript acquired from captions",
				"video_id", videoID, "language", outcome.Language)
			return outcome, nil
		}
		e.logger.Info("captions unusable, falling back to extraction",
			"video_id", videoID, "attempts", len(attempts))
	}

	outcome, err := e.extractor.run(ctx, videoID, req.Language)
	if err != nil {
		return nil, NewFailure(attempts, err)
	}

	e.logger.Info("transcript acquired from audio extraction",
		"video_id", videoID, "language", outcome.Language)
	return outcome, nil
}
