package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"ytscribe/transcript"
)

// resourceScheme is the URI scheme for video resources.
const resourceScheme = "youtube://"

func (s *Server) registerResources() {
	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "video_info",
		URITemplate: "youtube://{video_id}/info",
		Description: "Metadata for a YouTube video as JSON.",
		MIMEType:    "application/json",
	}, s.readResource)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "video_transcript",
		URITemplate: "youtube://{video_id}/transcript",
		Description: "Transcript of a YouTube video as plain text.",
		MIMEType:    "text/plain",
	}, s.readResource)
}

func (s *Server) readResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	videoID, kind, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "info":
		info, err := s.info.FetchVideoInfo(ctx, videoID)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			}},
		}, nil

	case "transcript":
		outcome, err := s.transcripts.Transcript(ctx, transcript.Request{VideoID: videoID})
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     outcome.Text,
			}},
		}, nil

	default:
		return nil, fmt.Errorf("unknown resource kind %q", kind)
	}
}

// parseResourceURI splits youtube://{video_id}/{kind} into its parts.
func parseResourceURI(uri string) (videoID, kind string, err error) {
	rest, ok := strings.CutPrefix(uri, resourceScheme)
	if !ok {
		return "", "", fmt.Errorf("unsupported resource URI %q", uri)
	}
	videoID, kind, ok = strings.Cut(rest, "/")
	if !ok || videoID == "" || kind == "" {
		return "", "", fmt.Errorf("malformed resource URI %q, want youtube://{video_id}/info or youtube://{video_id}/transcript", uri)
	}
	return videoID, kind, nil
}
