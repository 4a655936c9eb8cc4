package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"ytscribe"
	"ytscribe/config"
	"ytscribe/mcpserver"
	"ytscribe/server"
	"ytscribe/transcript"
	"ytscribe/youtube"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "serve":
		cmdServe(args)
	case "mcp":
		cmdMCP(args)
	case "transcript":
		cmdTranscript(args)
	case "info":
		cmdInfo(args)
	case "search":
		cmdSearch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ytscribe - YouTube transcript retrieval

Usage:
  ytscribe serve [flags]                 Run the HTTP API server
  ytscribe mcp                           Run the MCP server over stdio
  ytscribe transcript [flags] <video>    Get a video's transcript
  ytscribe info <video>                  Show video metadata
  ytscribe search <query>                Search for videos
  ytscribe help                          Show this help message

Examples:
  ytscribe transcript dQw4w9WgXcQ                        # Captions first, audio fallback
  ytscribe transcript --lang vi dQw4w9WgXcQ              # Prefer Vietnamese
  ytscribe transcript --extract dQw4w9WgXcQ              # Skip captions, transcribe audio
  ytscribe transcript --format srt dQw4w9WgXcQ           # SubRip output
  ytscribe serve --addr :8080                            # HTTP API
  ytscribe search "never gonna give you up"              # Needs YTSCRIBE_YOUTUBE_API_KEY

For help on a specific command: ytscribe <command> -h
`)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// signalContext cancels on SIGINT/SIGTERM.
func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return ctx
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "Listen address (overrides config)")
	fs.Parse(args)

	cfg := loadConfig()
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	logger := newLogger()
	slog.SetDefault(logger)

	engine, err := ytscribe.NewEngine(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	info := youtube.NewInfoClient(cfg.YtdlpPath)
	info.Timeout = cfg.YtdlpTimeout

	ctx := signalContext()
	search := newSearchClient(ctx, cfg, logger)

	srv := server.New(engine, info, search, logger)
	if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	fs.Parse(args)

	cfg := loadConfig()

	// stdout carries the protocol; all logging goes to stderr.
	logger := newLogger()
	slog.SetDefault(logger)

	engine, err := ytscribe.NewEngine(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	info := youtube.NewInfoClient(cfg.YtdlpPath)
	info.Timeout = cfg.YtdlpTimeout

	ctx := signalContext()
	search := newSearchClient(ctx, cfg, logger)

	srv := mcpserver.New(engine, info, search, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("mcp server failed", "error", err)
		os.Exit(1)
	}
}

// newSearchClient returns nil when no API key is configured; search
// surfaces then answer with a clear error instead of failing at startup.
func newSearchClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) *youtube.SearchClient {
	if cfg.YouTubeAPIKey == "" {
		logger.Info("no YouTube API key configured, search disabled")
		return nil
	}
	client, err := youtube.NewSearchClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		logger.Warn("search client unavailable", "error", err)
		return nil
	}
	return client
}

func cmdTranscript(args []string) {
	fs := flag.NewFlagSet("transcript", flag.ExitOnError)
	lang := fs.String("lang", "", "Preferred language (en or vi)")
	extract := fs.Bool("extract", false, "Skip captions and transcribe the audio")
	format := fs.String("format", "txt", "Output format: txt, srt, or vtt")
	asJSON := fs.Bool("json", false, "Emit the full outcome as JSON")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytscribe transcript [flags] <video-id-or-url>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing video ID\n")
		fs.Usage()
		os.Exit(1)
	}

	outputFormat, err := youtube.ParseOutputFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig()
	logger := newLogger()
	slog.SetDefault(logger)

	engine, err := ytscribe.NewEngine(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outcome, err := engine.Transcript(signalContext(), transcript.Request{
		VideoID:      youtube.ExtractVideoID(fs.Arg(0)),
		Language:     *lang,
		ForceExtract: *extract,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *asJSON:
		json.NewEncoder(os.Stdout).Encode(outcome)
	case outputFormat != youtube.FormatText:
		if len(outcome.Entries) == 0 {
			fmt.Fprintf(os.Stderr, "Error: format %q needs caption timing, but the transcript came from %s\n",
				outputFormat, outcome.Source)
			os.Exit(1)
		}
		body, err := youtube.Convert(outcome.Entries, outputFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(body)
	default:
		fmt.Println(outcome.Text)
		fmt.Fprintf(os.Stderr, "\n[language: %s, source: %s]\n", outcome.Language, outcome.Source)
	}
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Emit metadata as JSON")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing video ID\n")
		os.Exit(1)
	}

	info, err := ytscribe.FetchVideoInfo(signalContext(), fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		json.NewEncoder(os.Stdout).Encode(info)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Title:\t%s\n", info.Title)
	fmt.Fprintf(w, "Author:\t%s\n", info.Author)
	fmt.Fprintf(w, "Length:\t%ds\n", info.Length)
	fmt.Fprintf(w, "Views:\t%d\n", info.Views)
	fmt.Fprintf(w, "Published:\t%s\n", info.PublishDate)
	w.Flush()
}

func cmdSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing search query\n")
		os.Exit(1)
	}

	cfg := loadConfig()
	if cfg.YouTubeAPIKey == "" {
		fmt.Fprintf(os.Stderr, "Error: search requires YTSCRIBE_YOUTUBE_API_KEY\n")
		os.Exit(1)
	}

	ctx := signalContext()
	client, err := youtube.NewSearchClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	results, err := client.Search(ctx, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VIDEO ID\tTITLE\tAUTHOR")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.VideoID, r.Title, r.Author)
	}
	w.Flush()
}
