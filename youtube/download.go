package youtube

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ClientProfile describes one yt-dlp connection configuration. YouTube
// intermittently rejects the default web client fingerprint, so download
// attempts rotate through different player clients.
type ClientProfile struct {
	// Name identifies the profile in logs and error messages.
	Name string
	// PlayerClient is passed as --extractor-args youtube:player_client=...
	PlayerClient string
	// UserAgent overrides the request user agent when non-empty.
	UserAgent string
}

// DownloadProfiles returns the connection profiles in attempt order.
func DownloadProfiles() []ClientProfile {
	return []ClientProfile{
		{Name: "web", PlayerClient: "web"},
		{Name: "android", PlayerClient: "android", UserAgent: "com.google.android.youtube/19.09.37 (Linux; U; Android 11) gzip"},
		{Name: "ios", PlayerClient: "ios", UserAgent: "com.google.ios.youtube/19.09.3 (iPhone14,3; U; CPU iOS 15_6 like Mac OS X)"},
	}
}

// AudioDownloader downloads a video's audio track as MP3 using yt-dlp.
type AudioDownloader struct {
	// YtdlpPath is the path to the yt-dlp executable.
	YtdlpPath string
	// Timeout bounds a single download attempt. Zero means no limit
	// beyond the caller's context.
	Timeout time.Duration

	profiles []ClientProfile
	runner   commandRunner
}

// NewAudioDownloader creates a downloader using the given yt-dlp path.
// An empty path uses "yt-dlp" from PATH.
func NewAudioDownloader(ytdlpPath string) *AudioDownloader {
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	return &AudioDownloader{
		YtdlpPath: ytdlpPath,
		profiles:  DownloadProfiles(),
		runner:    execRunner{},
	}
}

// Download performs one download attempt, writing the audio to destPath.
// The attempt number (0-based) selects the connection profile. Success
// requires a non-empty file at destPath; an empty result is reported as
// ErrEmptyDownload so callers can move on to the next profile.
func (d *AudioDownloader) Download(ctx context.Context, videoID, destPath string, attempt int) error {
	if videoID == "" {
		return fmt.Errorf("video ID is required")
	}

	profile := d.profiles[attempt%len(d.profiles)]

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	args := d.buildArgs(videoID, destPath, profile)
	_, stderr, err := d.runner.Run(ctx, d.YtdlpPath, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrYtdlpNotInstalled, d.YtdlpPath)
		}
		if msg := strings.TrimSpace(stderr); msg != "" {
			return fmt.Errorf("yt-dlp (%s client): %s", profile.Name, lastLine(msg))
		}
		return fmt.Errorf("yt-dlp (%s client): %w", profile.Name, err)
	}

	info, statErr := os.Stat(destPath)
	if statErr != nil || info.Size() == 0 {
		return fmt.Errorf("%w (%s client)", ErrEmptyDownload, profile.Name)
	}

	return nil
}

// buildArgs assembles the yt-dlp argument list for one attempt.
func (d *AudioDownloader) buildArgs(videoID, destPath string, profile ClientProfile) []string {
	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--no-warnings",
		"--no-playlist",
		"-o", destPath,
	}
	if profile.PlayerClient != "" {
		args = append(args, "--extractor-args", "youtube:player_client="+profile.PlayerClient)
	}
	if profile.UserAgent != "" {
		args = append(args, "--user-agent", profile.UserAgent)
	}
	return append(args, videoID)
}

// lastLine returns the final non-empty line, where yt-dlp puts its error.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return s
}
