// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration for transcript retrieval.
type Config struct {
	// YtdlpPath is the path to the yt-dlp executable (default: "yt-dlp")
	YtdlpPath string `json:"ytdlp_path"`
	// YtdlpTimeout is the maximum time to wait for one yt-dlp operation
	YtdlpTimeout time.Duration `json:"ytdlp_timeout"`

	// WhisperPath is the path to the whisper executable (default: "whisper-cli")
	WhisperPath string `json:"whisper_path"`
	// WhisperModel is the path to the ggml model file
	WhisperModel string `json:"whisper_model"`
	// WhisperTimeout is the maximum time for one transcription run
	WhisperTimeout time.Duration `json:"whisper_timeout"`

	// TempDir holds downloaded audio artifacts (default: system temp)
	TempDir string `json:"temp_dir"`
	// ArtifactMaxAge is how long orphaned artifacts may linger before
	// the sweep removes them
	ArtifactMaxAge time.Duration `json:"artifact_max_age"`
	// DownloadAttempts is the audio download budget per request
	DownloadAttempts int `json:"download_attempts"`

	// YouTubeAPIKey enables Data API search and metadata fallback
	YouTubeAPIKey string `json:"youtube_api_key"`

	// HTTPAddr is the HTTP API listen address
	HTTPAddr string `json:"http_addr"`

	// MaxRetries is the maximum number of retries for failed HTTP calls
	MaxRetries int `json:"max_retries"`
	// InitialBackoff is the initial backoff duration for retries
	InitialBackoff time.Duration `json:"initial_backoff"`
	// MaxBackoff is the maximum backoff duration for retries
	MaxBackoff time.Duration `json:"max_backoff"`
	// BackoffMultiplier is the multiplier for exponential backoff (must be > 1)
	BackoffMultiplier float64 `json:"backoff_multiplier"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		YtdlpPath:         "yt-dlp",
		YtdlpTimeout:      5 * time.Minute,
		WhisperPath:       "whisper-cli",
		WhisperModel:      "",
		WhisperTimeout:    10 * time.Minute,
		TempDir:           "",
		ArtifactMaxAge:    time.Hour,
		DownloadAttempts:  3,
		HTTPAddr:          ":8080",
		MaxRetries:        3,
		InitialBackoff:    500 * time.Millisecond,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Load loads configuration from environment variables, config file, and applies defaults.
// Priority: env vars > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Config file is optional
	if err := cfg.loadFromFile(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from ytscribe.json in the current
// directory or the user config directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"ytscribe.json",
		filepath.Join(os.Getenv("HOME"), ".config", "ytscribe", "ytscribe.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTSCRIBE_YTDLP_PATH"); v != "" {
		c.YtdlpPath = v
	}
	if v := os.Getenv("YTSCRIBE_YTDLP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.YtdlpTimeout = d
		}
	}
	if v := os.Getenv("YTSCRIBE_WHISPER_PATH"); v != "" {
		c.WhisperPath = v
	}
	if v := os.Getenv("YTSCRIBE_WHISPER_MODEL"); v != "" {
		c.WhisperModel = v
	}
	if v := os.Getenv("YTSCRIBE_WHISPER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.WhisperTimeout = d
		}
	}
	if v := os.Getenv("YTSCRIBE_TEMP_DIR"); v != "" {
		c.TempDir = v
	}
	if v := os.Getenv("YTSCRIBE_ARTIFACT_MAX_AGE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.ArtifactMaxAge = d
		}
	}
	if v := os.Getenv("YTSCRIBE_DOWNLOAD_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DownloadAttempts = n
		}
	}
	if v := os.Getenv("YTSCRIBE_YOUTUBE_API_KEY"); v != "" {
		c.YouTubeAPIKey = v
	}
	if v := os.Getenv("YTSCRIBE_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("YTSCRIBE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("YTSCRIBE_INITIAL_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.InitialBackoff = d
		}
	}
	if v := os.Getenv("YTSCRIBE_MAX_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MaxBackoff = d
		}
	}
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.YtdlpTimeout <= 0 {
		return fmt.Errorf("ytdlp_timeout must be positive")
	}
	if c.WhisperTimeout <= 0 {
		return fmt.Errorf("whisper_timeout must be positive")
	}
	if c.ArtifactMaxAge <= 0 {
		return fmt.Errorf("artifact_max_age must be positive")
	}
	if c.DownloadAttempts < 1 {
		return fmt.Errorf("download_attempts must be at least 1")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be positive")
	}
	if c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max_backoff must be >= initial_backoff")
	}
	if c.BackoffMultiplier <= 1 {
		return fmt.Errorf("backoff_multiplier must be > 1")
	}
	return nil
}
