package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("YTSCRIBE_YTDLP_PATH", "/opt/yt-dlp")
	t.Setenv("YTSCRIBE_WHISPER_MODEL", "/models/ggml-base.bin")
	t.Setenv("YTSCRIBE_DOWNLOAD_ATTEMPTS", "5")
	t.Setenv("YTSCRIBE_ARTIFACT_MAX_AGE", "30m")
	t.Setenv("YTSCRIBE_HTTP_ADDR", ":9090")

	cfg := DefaultConfig()
	cfg.loadFromEnv()

	if cfg.YtdlpPath != "/opt/yt-dlp" {
		t.Errorf("YtdlpPath = %q", cfg.YtdlpPath)
	}
	if cfg.WhisperModel != "/models/ggml-base.bin" {
		t.Errorf("WhisperModel = %q", cfg.WhisperModel)
	}
	if cfg.DownloadAttempts != 5 {
		t.Errorf("DownloadAttempts = %d", cfg.DownloadAttempts)
	}
	if cfg.ArtifactMaxAge != 30*time.Minute {
		t.Errorf("ArtifactMaxAge = %v", cfg.ArtifactMaxAge)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
}

func TestEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("YTSCRIBE_DOWNLOAD_ATTEMPTS", "lots")
	t.Setenv("YTSCRIBE_YTDLP_TIMEOUT", "soon")

	cfg := DefaultConfig()
	cfg.loadFromEnv()

	if cfg.DownloadAttempts != 3 {
		t.Errorf("malformed int should keep default, got %d", cfg.DownloadAttempts)
	}
	if cfg.YtdlpTimeout != 5*time.Minute {
		t.Errorf("malformed duration should keep default, got %v", cfg.YtdlpTimeout)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero ytdlp timeout", func(c *Config) { c.YtdlpTimeout = 0 }},
		{"zero whisper timeout", func(c *Config) { c.WhisperTimeout = 0 }},
		{"zero artifact max age", func(c *Config) { c.ArtifactMaxAge = 0 }},
		{"zero download attempts", func(c *Config) { c.DownloadAttempts = 0 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
		{"backoff inversion", func(c *Config) { c.MaxBackoff = c.InitialBackoff / 2 }},
		{"multiplier too small", func(c *Config) { c.BackoffMultiplier = 1.0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
