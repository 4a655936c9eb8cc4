package ytscribe

import (
	"ytscribe/internal/retry"
	"ytscribe/transcript"
	"ytscribe/whisper"
	"ytscribe/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytscribe.ErrCaptionsNotAvailable) {
//		fmt.Println("No captions for this video")
//	}
//
// Using errors.As() for structured failures:
//
//	var failure *ytscribe.Failure
//	if errors.As(err, &failure) {
//		fmt.Printf("%d caption attempts failed\n", len(failure.Attempts))
//	}

// Type aliases for convenient error handling.
type (
	// Failure is the structured result when no transcript source worked.
	Failure = transcript.Failure
	// Attempt records one caption fetch and its result.
	Attempt = transcript.Attempt
	// RetryableError wraps errors that occurred after retries were exhausted.
	RetryableError = retry.RetryableError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrMissingVideoID indicates the request carried no video identifier.
	ErrMissingVideoID = transcript.ErrMissingVideoID
	// ErrDownloadExhausted indicates every audio download attempt failed.
	ErrDownloadExhausted = transcript.ErrDownloadExhausted
	// ErrTranscription indicates the speech-to-text engine failed.
	ErrTranscription = transcript.ErrTranscription
	// ErrEmptyTranscription indicates transcription produced no text.
	ErrEmptyTranscription = transcript.ErrEmptyTranscription

	// ErrCaptionsNotAvailable indicates no caption track exists.
	ErrCaptionsNotAvailable = youtube.ErrCaptionsNotAvailable
	// ErrVideoUnavailable indicates the video does not exist or cannot be accessed.
	ErrVideoUnavailable = youtube.ErrVideoUnavailable
	// ErrYtdlpNotInstalled indicates the yt-dlp binary was not found.
	ErrYtdlpNotInstalled = youtube.ErrYtdlpNotInstalled
	// ErrEmptyDownload indicates a download produced no data.
	ErrEmptyDownload = youtube.ErrEmptyDownload

	// ErrWhisperNotInstalled indicates the whisper binary was not found.
	ErrWhisperNotInstalled = whisper.ErrWhisperNotInstalled
	// ErrModelNotFound indicates the whisper model file does not exist.
	ErrModelNotFound = whisper.ErrModelNotFound
)

// IsRetryable reports whether an error is worth retrying.
func IsRetryable(err error) bool {
	return retry.IsRetryable(err)
}
