// Package youtube provides the remote collaborators for transcript
// acquisition: caption retrieval, audio download, video metadata, and search.
package youtube

import "errors"

// Sentinel errors for YouTube operations.
var (
	// ErrCaptionsNotAvailable indicates no caption track exists for the
	// requested video/language combination.
	ErrCaptionsNotAvailable = errors.New("youtube: captions not available")
	// ErrVideoUnavailable indicates the video does not exist or cannot be accessed.
	ErrVideoUnavailable = errors.New("youtube: video unavailable")
	// ErrYtdlpNotInstalled indicates the yt-dlp binary was not found.
	ErrYtdlpNotInstalled = errors.New("youtube: yt-dlp not installed")
	// ErrEmptyDownload indicates a download completed but produced no data.
	ErrEmptyDownload = errors.New("youtube: download produced empty file")
)

// CaptionEntry is a single timed caption line.
type CaptionEntry struct {
	// Start is the offset from the beginning of the video, in seconds.
	Start float64 `json:"start"`
	// Duration is how long the caption is displayed, in seconds.
	Duration float64 `json:"duration"`
	// Text is the caption text.
	Text string `json:"text"`
}

// VideoInfo contains basic metadata about a YouTube video.
type VideoInfo struct {
	ID          string `json:"video_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Length      int    `json:"length"`
	Views       int64  `json:"views"`
	PublishDate string `json:"publish_date"`
	Description string `json:"description"`
}

// SearchResult is one entry from a video search.
type SearchResult struct {
	Title   string `json:"title"`
	VideoID string `json:"video_id"`
	Author  string `json:"author"`
	URL     string `json:"url"`
}
