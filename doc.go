// Package ytscribe retrieves transcripts for YouTube videos.
//
// It prefers official captions and falls back to downloading the video's
// audio and transcribing it with whisper.cpp when captions are missing,
// low-quality, or explicitly skipped.
//
// # Quick Start
//
// Get a transcript:
//
//	ctx := context.Background()
//	outcome, err := ytscribe.GetTranscript(ctx, "dQw4w9WgXcQ")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(outcome.Text, outcome.Language, outcome.Source)
//
// Fetch video metadata:
//
//	info, err := ytscribe.FetchVideoInfo(ctx, "dQw4w9WgXcQ")
//
// # Engine Reuse
//
// GetTranscript builds a fresh engine per call. Long-running programs
// should construct one engine and reuse it, which keeps the whisper
// model loaded across requests:
//
//	cfg, _ := config.Load()
//	engine, err := ytscribe.NewEngine(cfg, slog.Default())
//	outcome, err := engine.Transcript(ctx, transcript.Request{
//		VideoID:  "dQw4w9WgXcQ",
//		Language: "vi",
//	})
//
// # Requirements
//
// Audio extraction requires the yt-dlp and whisper-cli binaries plus a
// ggml model file (YTSCRIBE_WHISPER_MODEL). Caption retrieval has no
// external dependencies.
//
// # Error Handling
//
// The transcript engine never panics on remote failures. When every
// source fails it returns a *transcript.Failure listing each caption
// attempt and the extraction error:
//
//	var failure *transcript.Failure
//	if errors.As(err, &failure) {
//		for _, a := range failure.Attempts {
//			fmt.Printf("%s: %s\n", a.Language, a.Status)
//		}
//	}
package ytscribe
