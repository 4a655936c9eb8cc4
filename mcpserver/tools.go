package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"ytscribe/transcript"
	"ytscribe/youtube"
)

// TranscriptInput is the argument shape shared by the transcript tools.
type TranscriptInput struct {
	VideoID  string `json:"video_id" jsonschema:"YouTube video ID or URL"`
	Language string `json:"language,omitempty" jsonschema:"Preferred transcript language (en or vi, aliases accepted)"`
}

// TranscriptOutput is what the transcript tools return.
type TranscriptOutput struct {
	VideoID    string `json:"video_id"`
	Transcript string `json:"transcript"`
	Language   string `json:"language"`
	Source     string `json:"source"`
}

// SearchInput is the argument shape for video search.
type SearchInput struct {
	Query string `json:"query" jsonschema:"Free-text search query"`
}

// SearchOutput lists matching videos.
type SearchOutput struct {
	Results []youtube.SearchResult `json:"results"`
}

// InfoInput is the argument shape for metadata lookup.
type InfoInput struct {
	VideoID string `json:"video_id" jsonschema:"YouTube video ID or URL"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_transcript",
		Description: "Get the transcript of a YouTube video. Tries official captions first (English and Vietnamese), then falls back to downloading the audio and transcribing it with speech-to-text. Returns the transcript text, its language, and whether it came from captions or transcription.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		return s.runTranscript(ctx, input, false)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "extract_transcript",
		Description: "Transcribe a YouTube video's audio with speech-to-text, skipping captions entirely. Use when captions are known to be wrong or missing, or when a verbatim transcription is preferred over auto-captions. Slower than get_transcript.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		return s.runTranscript(ctx, input, true)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_video_info",
		Description: "Get metadata for a YouTube video: title, author, length in seconds, view count, publish date, and description.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input InfoInput) (*mcp.CallToolResult, *youtube.VideoInfo, error) {
		videoID := youtube.ExtractVideoID(input.VideoID)
		if videoID == "" {
			return nil, nil, errors.New("video_id is required")
		}
		info, err := s.info.FetchVideoInfo(ctx, videoID)
		if err != nil {
			return nil, nil, err
		}
		return nil, info, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_youtube_video",
		Description: "Search YouTube for videos matching a query. Returns up to 5 results with title, video ID, author, and URL.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		if input.Query == "" {
			return nil, SearchOutput{}, errors.New("query is required")
		}
		if s.search == nil {
			return nil, SearchOutput{}, errors.New("search requires a YouTube API key")
		}
		results, err := s.search.Search(ctx, input.Query)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		return nil, SearchOutput{Results: results}, nil
	})
}

func (s *Server) runTranscript(ctx context.Context, input TranscriptInput, force bool) (*mcp.CallToolResult, TranscriptOutput, error) {
	videoID := youtube.ExtractVideoID(input.VideoID)
	if videoID == "" {
		return nil, TranscriptOutput{}, errors.New("video_id is required")
	}

	outcome, err := s.transcripts.Transcript(ctx, transcript.Request{
		VideoID:      videoID,
		Language:     input.Language,
		ForceExtract: force,
	})
	if err != nil {
		return nil, TranscriptOutput{}, err
	}

	return nil, TranscriptOutput{
		VideoID:    outcome.VideoID,
		Transcript: outcome.Text,
		Language:   outcome.Language,
		Source:     string(outcome.Source),
	}, nil
}
