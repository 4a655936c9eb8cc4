// Package mcpserver exposes transcript retrieval to model-context-protocol
// clients: tools for acquisition and search, resources for video info and
// transcripts, prompts for common workflows.
package mcpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"ytscribe/server"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// Server bridges the transcript engine to MCP.
type Server struct {
	transcripts server.TranscriptService
	info        server.InfoService
	// search is nil without an API key; the search tool then reports
	// an error instead of being hidden, so clients learn why.
	search server.SearchService
	logger *slog.Logger
	mcp    *mcp.Server
}

// New creates the MCP server and registers all tools, resources, and
// prompts. search may be nil.
func New(transcripts server.TranscriptService, info server.InfoService, search server.SearchService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		transcripts: transcripts,
		info:        info,
		search:      search,
		logger:      logger,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "ytscribe",
			Version: Version,
		}, nil),
	}

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves MCP over streamable HTTP.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}
