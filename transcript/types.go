// Package transcript implements the transcript acquisition policy:
// caption attempts in language preference order, a quality filter for
// placeholder tracks, and the audio extraction fallback, merged into one
// deterministic outcome per request.
package transcript

import (
	"errors"
	"fmt"
	"strings"

	"ytscribe/youtube"
)

// Sentinel errors for the acquisition pipeline.
var (
	// ErrMissingVideoID indicates the request carried no video identifier.
	ErrMissingVideoID = errors.New("transcript: video ID is required")
	// ErrDownloadExhausted indicates every download attempt failed.
	ErrDownloadExhausted = errors.New("transcript: all download attempts failed")
	// ErrTranscription indicates the speech-to-text engine failed.
	ErrTranscription = errors.New("transcript: transcription failed")
	// ErrEmptyTranscription indicates transcription succeeded but
	// produced no text.
	ErrEmptyTranscription = errors.New("transcript: transcription produced no text")
)

// Request describes one transcript acquisition.
type Request struct {
	// VideoID identifies the video. Required.
	VideoID string
	// Language is a free-form language hint. Unrecognized hints fall
	// back to the default preference order.
	Language string
	// ForceExtract skips captions entirely and goes straight to audio
	// extraction.
	ForceExtract bool
}

// Source tags where a transcript came from.
type Source string

const (
	// SourceCaptions marks text retrieved from a platform caption track.
	SourceCaptions Source = "captions"
	// SourceTranscription marks text produced by speech-to-text.
	SourceTranscription Source = "transcription"
)

// Outcome is a successful acquisition.
type Outcome struct {
	VideoID  string `json:"video_id"`
	Text     string `json:"transcript"`
	Language string `json:"language"`
	Source   Source `json:"source"`

	// Entries carries the timed caption lines when Source is captions,
	// enabling conversion to subtitle formats. Nil for transcription
	// outcomes, which have no timing information.
	Entries []youtube.CaptionEntry `json:"-"`
}

// AttemptStatus classifies one caption attempt.
type AttemptStatus string

const (
	StatusSuccess  AttemptStatus = "success"
	StatusRejected AttemptStatus = "rejected-low-quality"
	StatusNotFound AttemptStatus = "not-found"
	StatusError    AttemptStatus = "error"
)

// AutoLanguage marks the unconstrained caption attempt.
const AutoLanguage = "auto"

// Attempt records one caption fetch and its result.
type Attempt struct {
	// Language is the code requested, or AutoLanguage for the
	// platform-default track.
	Language string        `json:"language"`
	Status   AttemptStatus `json:"status"`
	// Detail is the diagnostic message for unsuccessful attempts.
	Detail string `json:"detail,omitempty"`
}

// Failure is the structured terminal error: every caption attempt made
// plus the extraction error, when extraction ran. It is a data value,
// not a panic path; callers inspect it to build their error payloads.
type Failure struct {
	Attempts        []Attempt `json:"attempts"`
	DownstreamError string    `json:"downstream_error,omitempty"`

	cause error
}

// NewFailure builds a failure from the caption attempts and the
// extraction error (nil when extraction never ran).
func NewFailure(attempts []Attempt, cause error) *Failure {
	f := &Failure{Attempts: attempts, cause: cause}
	if cause != nil {
		f.DownstreamError = cause.Error()
	}
	return f
}

// Error summarizes the failure in one line.
func (f *Failure) Error() string {
	var sb strings.Builder
	sb.WriteString("no usable transcript")
	for _, a := range f.Attempts {
		sb.WriteString(fmt.Sprintf("; %s: %s", a.Language, a.Status))
	}
	if f.DownstreamError != "" {
		sb.WriteString("; extraction: ")
		sb.WriteString(f.DownstreamError)
	}
	return sb.String()
}

// Unwrap exposes the extraction error so callers can match the
// ErrDownloadExhausted, ErrTranscription, and ErrEmptyTranscription
// sentinels with errors.Is.
func (f *Failure) Unwrap() error {
	return f.cause
}

// CaptionsNotFound reports whether every caption attempt ended not-found.
// Front ends use this to distinguish a missing video from an internal
// failure.
func (f *Failure) CaptionsNotFound() bool {
	if len(f.Attempts) == 0 {
		return false
	}
	for _, a := range f.Attempts {
		if a.Status != StatusNotFound {
			return false
		}
	}
	return true
}
