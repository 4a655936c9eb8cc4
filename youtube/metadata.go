package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// InfoClient retrieves video metadata using yt-dlp's JSON output.
type InfoClient struct {
	// YtdlpPath is the path to the yt-dlp executable.
	YtdlpPath string
	// Timeout bounds the metadata fetch. Zero means no limit beyond the
	// caller's context.
	Timeout time.Duration

	runner commandRunner
}

// NewInfoClient creates a metadata client using the given yt-dlp path.
// An empty path uses "yt-dlp" from PATH.
func NewInfoClient(ytdlpPath string) *InfoClient {
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	return &InfoClient{
		YtdlpPath: ytdlpPath,
		runner:    execRunner{},
	}
}

// FetchVideoInfo retrieves metadata for a video.
func (c *InfoClient) FetchVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	if videoID == "" {
		return nil, fmt.Errorf("video ID is required")
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	stdout, stderr, err := c.runner.Run(ctx, c.YtdlpPath, "-J", "--no-warnings", "--no-playlist", videoID)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrYtdlpNotInstalled, c.YtdlpPath)
		}
		if strings.Contains(stderr, "Video unavailable") || strings.Contains(stderr, "Private video") {
			return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, videoID)
		}
		if msg := strings.TrimSpace(stderr); msg != "" {
			return nil, fmt.Errorf("fetch video info: %s", lastLine(msg))
		}
		return nil, fmt.Errorf("fetch video info: %w", err)
	}

	return parseVideoInfo([]byte(stdout))
}

// parseVideoInfo extracts the metadata fields from yt-dlp's JSON output.
func parseVideoInfo(data []byte) (*VideoInfo, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse metadata JSON: %w", err)
	}

	info := &VideoInfo{}

	id, _ := raw["id"].(string)
	title, _ := raw["title"].(string)
	if id == "" || title == "" {
		return nil, fmt.Errorf("invalid metadata: missing id or title")
	}
	info.ID = id
	info.Title = title

	if author, ok := raw["uploader"].(string); ok {
		info.Author = author
	} else if author, ok := raw["channel"].(string); ok {
		info.Author = author
	}
	if duration, ok := raw["duration"].(float64); ok {
		info.Length = int(duration)
	}
	if views, ok := raw["view_count"].(float64); ok {
		info.Views = int64(views)
	}
	if date, ok := raw["upload_date"].(string); ok {
		info.PublishDate = formatUploadDate(date)
	}
	if desc, ok := raw["description"].(string); ok {
		info.Description = desc
	}

	return info, nil
}

// formatUploadDate converts yt-dlp's YYYYMMDD date to YYYY-MM-DD.
// Unparseable values pass through unchanged.
func formatUploadDate(date string) string {
	t, err := time.Parse("20060102", date)
	if err != nil {
		return date
	}
	return t.Format("2006-01-02")
}
