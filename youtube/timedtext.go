package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	httpclient "ytscribe/http"
)

// timedtextEndpoint is YouTube's caption API.
const timedtextEndpoint = "https://www.youtube.com/api/timedtext"

// TimedtextClient fetches caption tracks from YouTube's timedtext API.
type TimedtextClient struct {
	httpClient *httpclient.Client
	baseURL    string
}

// NewTimedtextClient creates a timedtext client on top of the given HTTP client.
// A nil client uses the default configuration.
func NewTimedtextClient(client *httpclient.Client) *TimedtextClient {
	if client == nil {
		client = httpclient.New(nil)
	}
	return &TimedtextClient{
		httpClient: client,
		baseURL:    timedtextEndpoint,
	}
}

// timedtextResponse is the raw JSON3 response shape.
type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

// timedtextEvent is a single timed event.
type timedtextEvent struct {
	TStartMs    int64              `json:"tStartMs"`
	DDurationMs int64              `json:"dDurationMs"`
	Segs        []timedtextSegment `json:"segs,omitempty"`
}

// timedtextSegment is a text fragment within an event.
type timedtextSegment struct {
	UTF8 string `json:"utf8"`
}

// FetchCaptions fetches the caption track for a video. An empty langCode
// requests the platform's default track (whatever YouTube selects, typically
// the auto-generated one). A missing track is reported as
// ErrCaptionsNotAvailable; transport and rate-limit failures surface as-is.
func (tc *TimedtextClient) FetchCaptions(ctx context.Context, videoID, langCode string) ([]CaptionEntry, error) {
	if videoID == "" {
		return nil, fmt.Errorf("video ID is required")
	}

	params := url.Values{}
	params.Set("v", videoID)
	params.Set("fmt", "json3")
	if langCode != "" {
		params.Set("lang", langCode)
	}

	apiURL := fmt.Sprintf("%s?%s", tc.baseURL, params.Encode())

	response, err := tc.httpClient.Get(ctx, apiURL)
	if err != nil {
		return nil, fmt.Errorf("timedtext request: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK:
		// Success
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: video %s language %q", ErrCaptionsNotAvailable, videoID, langCode)
	default:
		return nil, fmt.Errorf("timedtext API returned status %d", response.StatusCode)
	}

	// YouTube answers 200 with an empty body for videos without the
	// requested track, so an empty or unparseable payload also means
	// no captions.
	entries, err := parseTimedtext(response.Body)
	if err != nil || len(entries) == 0 {
		return nil, fmt.Errorf("%w: video %s language %q", ErrCaptionsNotAvailable, videoID, langCode)
	}

	return entries, nil
}

// parseTimedtext parses the JSON3 timedtext payload into caption entries.
func parseTimedtext(data []byte) ([]CaptionEntry, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty timedtext payload")
	}

	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal timedtext JSON: %w", err)
	}

	var entries []CaptionEntry
	for _, event := range resp.Events {
		if len(event.Segs) == 0 {
			continue
		}

		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}

		line := strings.TrimSpace(text.String())
		if line == "" {
			continue
		}

		entries = append(entries, CaptionEntry{
			Start:    float64(event.TStartMs) / 1000.0,
			Duration: float64(event.DDurationMs) / 1000.0,
			Text:     line,
		})
	}

	return entries, nil
}
