package youtube

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	ytapi "google.golang.org/api/youtube/v3"
	"google.golang.org/api/option"
)

// maxSearchResults caps the number of results returned by a search.
const maxSearchResults = 5

// SearchClient queries the YouTube Data API for video search and metadata.
type SearchClient struct {
	service *ytapi.Service
}

// NewSearchClient creates a Data API client with the given API key.
func NewSearchClient(ctx context.Context, apiKey string) (*SearchClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}
	service, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create YouTube service: %w", err)
	}
	return &SearchClient{service: service}, nil
}

// Search returns up to five videos matching the query.
func (c *SearchClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is required")
	}

	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxSearchResults).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	results := make([]SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		results = append(results, SearchResult{
			Title:   item.Snippet.Title,
			VideoID: item.Id.VideoId,
			Author:  item.Snippet.ChannelTitle,
			URL:     "https://www.youtube.com/watch?v=" + item.Id.VideoId,
		})
	}
	return results, nil
}

// FetchVideoInfo retrieves metadata through the Data API. It serves as a
// fallback when yt-dlp is unavailable.
func (c *SearchClient) FetchVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	if videoID == "" {
		return nil, fmt.Errorf("video ID is required")
	}

	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("fetch video info: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, videoID)
	}

	item := resp.Items[0]
	info := &VideoInfo{ID: videoID}
	if item.Snippet != nil {
		info.Title = item.Snippet.Title
		info.Author = item.Snippet.ChannelTitle
		info.Description = item.Snippet.Description
		if len(item.Snippet.PublishedAt) >= 10 {
			info.PublishDate = item.Snippet.PublishedAt[:10]
		}
	}
	if item.ContentDetails != nil {
		info.Length = parseISO8601Duration(item.ContentDetails.Duration)
	}
	if item.Statistics != nil {
		info.Views = int64(item.Statistics.ViewCount)
	}
	return info, nil
}

// parseISO8601Duration converts an ISO 8601 duration such as "PT1H2M3S"
// to seconds. Malformed input yields 0.
func parseISO8601Duration(s string) int {
	s = strings.TrimPrefix(s, "P")
	var days, hours, minutes, seconds int

	if i := strings.Index(s, "D"); i >= 0 {
		days, _ = strconv.Atoi(s[:i])
		s = s[i+1:]
	}
	s = strings.TrimPrefix(s, "T")
	if i := strings.Index(s, "H"); i >= 0 {
		hours, _ = strconv.Atoi(s[:i])
		s = s[i+1:]
	}
	if i := strings.Index(s, "M"); i >= 0 {
		minutes, _ = strconv.Atoi(s[:i])
		s = s[i+1:]
	}
	if i := strings.Index(s, "S"); i >= 0 {
		seconds, _ = strconv.Atoi(s[:i])
	}
	return days*86400 + hours*3600 + minutes*60 + seconds
}
