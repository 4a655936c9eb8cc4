// Package storage manages temporary audio artifacts produced while
// extracting transcripts. Artifacts are working files, not a cache:
// every one is deleted as soon as its transcription finishes, and a
// periodic sweep catches anything a crashed or interrupted run left
// behind.
package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxAge is how long an orphaned artifact may linger before the
// sweep removes it.
const DefaultMaxAge = time.Hour

// audioExt is the extension audio downloads are stored with.
const audioExt = ".mp3"

// Artifact is one temporary audio file.
type Artifact struct {
	// ID is the random component of the file name.
	ID string
	// VideoID is the video the audio belongs to.
	VideoID string
	// Path is the absolute location on disk.
	Path string
	// CreatedAt is when the artifact was allocated.
	CreatedAt time.Time
}

// Store allocates and cleans up temporary audio files in a single
// directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a store rooted at dir, creating the directory if needed.
// An empty dir uses the system temp directory.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "ytscribe")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the artifact directory.
func (s *Store) Dir() string {
	return s.dir
}

// Create allocates a new artifact path for a video. Each call produces a
// unique name so concurrent requests for the same video never collide.
// The file itself is created by the downloader.
func (s *Store) Create(videoID string) Artifact {
	id := uuid.NewString()
	return Artifact{
		ID:        id,
		VideoID:   videoID,
		Path:      filepath.Join(s.dir, fmt.Sprintf("%s-%s%s", videoID, id, audioExt)),
		CreatedAt: time.Now(),
	}
}

// Remove deletes the artifact's file. Failures are logged and swallowed:
// the sweep will retry later, and a leftover file must never fail the
// request that produced it.
func (s *Store) Remove(a Artifact) {
	if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove audio artifact",
			"path", a.Path,
			"video_id", a.VideoID,
			"error", err)
	}
}

// Sweep deletes every file in the directory older than maxAge, not just
// audio: whisper writes its text output next to the audio file, so a
// crash can orphan either kind. Errors on individual files are logged
// and skipped so one stubborn file cannot block the rest. Returns the
// number of files removed.
func (s *Store) Sweep(maxAge time.Duration) int {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	cutoff := time.Now().Add(-maxAge)

	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("failed to read artifact directory", "dir", s.dir, "error", err)
		return 0
	}

	removed := 0
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("failed to sweep stale artifact", "path", path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("swept stale audio artifacts", "count", removed, "dir", s.dir)
	}
	return removed
}
