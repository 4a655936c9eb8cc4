package ytscribe

import (
	"context"
	"log/slog"

	"ytscribe/config"
	httpclient "ytscribe/http"
	"ytscribe/internal/retry"
	"ytscribe/storage"
	"ytscribe/transcript"
	"ytscribe/whisper"
	"ytscribe/youtube"
)

// NewEngine wires a transcript engine from configuration: the caption
// client, the audio downloader, the transcription engine, and the
// artifact store.
func NewEngine(cfg *config.Config, logger *slog.Logger) (*transcript.Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Retry = retry.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
		Multiplier:     cfg.BackoffMultiplier,
		JitterFraction: 0.2,
	}
	captions := youtube.NewTimedtextClient(httpclient.New(httpCfg))

	downloader := youtube.NewAudioDownloader(cfg.YtdlpPath)
	downloader.Timeout = cfg.YtdlpTimeout

	engine := whisper.New(cfg.WhisperPath, cfg.WhisperModel)
	engine.Timeout = cfg.WhisperTimeout

	store, err := storage.New(cfg.TempDir, logger)
	if err != nil {
		return nil, err
	}

	return transcript.New(transcript.Config{
		Captions:         captions,
		Downloader:       downloader,
		Transcriber:      engine,
		Store:            store,
		DownloadAttempts: cfg.DownloadAttempts,
		ArtifactMaxAge:   cfg.ArtifactMaxAge,
		Logger:           logger,
	})
}

// GetTranscript retrieves a transcript with default configuration.
// Applications embedding this package long-term should build an engine
// with NewEngine once and reuse it.
func GetTranscript(ctx context.Context, videoID string) (*transcript.Outcome, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	engine, err := NewEngine(cfg, nil)
	if err != nil {
		return nil, err
	}
	return engine.Transcript(ctx, transcript.Request{VideoID: youtube.ExtractVideoID(videoID)})
}

// FetchVideoInfo retrieves video metadata with default configuration.
func FetchVideoInfo(ctx context.Context, videoID string) (*youtube.VideoInfo, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	client := youtube.NewInfoClient(cfg.YtdlpPath)
	client.Timeout = cfg.YtdlpTimeout
	return client.FetchVideoInfo(ctx, youtube.ExtractVideoID(videoID))
}
