// Package server exposes the transcript engine over HTTP. Handlers are
// thin translation layers: query parsing in, JSON out, all policy in the
// transcript package.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ytscribe/transcript"
	"ytscribe/youtube"
)

// TranscriptService acquires transcripts.
type TranscriptService interface {
	Transcript(ctx context.Context, req transcript.Request) (*transcript.Outcome, error)
}

// InfoService retrieves video metadata.
type InfoService interface {
	FetchVideoInfo(ctx context.Context, videoID string) (*youtube.VideoInfo, error)
}

// SearchService finds videos by free-text query.
type SearchService interface {
	Search(ctx context.Context, query string) ([]youtube.SearchResult, error)
}

// Server is the HTTP front end.
type Server struct {
	transcripts TranscriptService
	info        InfoService
	// search is nil when no API key is configured; the endpoint then
	// answers 503.
	search SearchService
	logger *slog.Logger
	mux    *http.ServeMux
}

// New creates the server. search may be nil.
func New(transcripts TranscriptService, info InfoService, search SearchService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		transcripts: transcripts,
		info:        info,
		search:      search,
		logger:      logger,
		mux:         http.NewServeMux(),
	}

	s.mux.Handle("GET /transcript", s.instrument("transcript", s.handleTranscript))
	s.mux.Handle("GET /video/info", s.instrument("video_info", s.handleVideoInfo))
	s.mux.Handle("GET /search", s.instrument("search", s.handleSearch))
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Handler returns the root handler with logging middleware applied.
func (s *Server) Handler() http.Handler {
	return s.withRequestLog(s.mux)
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	videoID := youtube.ExtractVideoID(q.Get("video_id"))
	if videoID == "" {
		writeError(w, http.StatusBadRequest, "video_id is required")
		return
	}

	format, err := youtube.ParseOutputFormat(q.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := transcript.Request{
		VideoID:      videoID,
		Language:     q.Get("language"),
		ForceExtract: q.Get("force_extract") == "true" || q.Get("force_extract") == "1",
	}

	outcome, err := s.transcripts.Transcript(r.Context(), req)
	if err != nil {
		s.writeTranscriptError(w, videoID, err)
		return
	}

	if format != youtube.FormatText {
		// Subtitle formats need timing data, which only captions carry.
		if len(outcome.Entries) == 0 {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("format %q requires caption timing, but transcript came from %s", format, outcome.Source))
			return
		}
		body, err := youtube.Convert(outcome.Entries, format)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(body))
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// writeTranscriptError maps engine failures to HTTP statuses: bad input
// is 400, a video with no reachable transcript is 404, anything else 500.
func (s *Server) writeTranscriptError(w http.ResponseWriter, videoID string, err error) {
	if errors.Is(err, transcript.ErrMissingVideoID) {
		writeError(w, http.StatusBadRequest, "video_id is required")
		return
	}

	var failure *transcript.Failure
	if errors.As(err, &failure) {
		status := http.StatusInternalServerError
		if failure.CaptionsNotFound() && errors.Is(failure, transcript.ErrDownloadExhausted) {
			status = http.StatusNotFound
		}
		s.logger.Warn("transcript acquisition failed",
			"video_id", videoID, "attempts", len(failure.Attempts), "error", failure.DownstreamError)
		writeError(w, status, failure.Error())
		return
	}

	s.logger.Error("transcript request failed", "video_id", videoID, "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) handleVideoInfo(w http.ResponseWriter, r *http.Request) {
	videoID := youtube.ExtractVideoID(r.URL.Query().Get("video_id"))
	if videoID == "" {
		writeError(w, http.StatusBadRequest, "video_id is required")
		return
	}

	info, err := s.info.FetchVideoInfo(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, youtube.ErrVideoUnavailable) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.search == nil {
		writeError(w, http.StatusServiceUnavailable, "search requires a YouTube API key")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	results, err := s.search.Search(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
