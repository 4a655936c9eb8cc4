package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "transcript_youtube_video",
		Description: "Retrieve and display the transcript of a YouTube video.",
		Arguments: []*mcp.PromptArgument{
			{Name: "video_id", Description: "YouTube video ID or URL", Required: true},
			{Name: "language", Description: "Preferred transcript language (en or vi)"},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		videoID := req.Params.Arguments["video_id"]
		if videoID == "" {
			return nil, errors.New("video_id is required")
		}
		text := fmt.Sprintf("Use the get_transcript tool to retrieve the transcript of YouTube video %s", videoID)
		if lang := req.Params.Arguments["language"]; lang != "" {
			text += fmt.Sprintf(" in language %q", lang)
		}
		text += ", then present it to the user with the video's title."

		return &mcp.GetPromptResult{
			Description: "Retrieve a YouTube video transcript",
			Messages: []*mcp.PromptMessage{{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			}},
		}, nil
	})

	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "summarize_youtube_video",
		Description: "Retrieve a YouTube video's transcript and summarize it.",
		Arguments: []*mcp.PromptArgument{
			{Name: "video_id", Description: "YouTube video ID or URL", Required: true},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		videoID := req.Params.Arguments["video_id"]
		if videoID == "" {
			return nil, errors.New("video_id is required")
		}

		return &mcp.GetPromptResult{
			Description: "Summarize a YouTube video",
			Messages: []*mcp.PromptMessage{{
				Role: "user",
				Content: &mcp.TextContent{
					Text: fmt.Sprintf("Use the get_transcript tool to retrieve the transcript of YouTube video %s, then write a concise summary covering the main points, key takeaways, and any notable quotes.", videoID),
				},
			}},
		}, nil
	})
}
