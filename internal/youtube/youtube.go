// Package youtube is the live search provider: a thin client over the
// YouTube Data API v3 search and videos endpoints.
package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the YouTube Data API root.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// SearchRequest describes one provider query.
type SearchRequest struct {
	Query      string
	MaxResults int
	// SafeSearch is "strict", "moderate" or "none". Empty means strict.
	SafeSearch string
	// Duration is an optional API hint: "short", "medium" or "long".
	Duration string
}

// SearchResult is one video returned by the provider.
type SearchResult struct {
	VideoID         string `json:"video_id"`
	Title           string `json:"title"`
	ChannelTitle    string `json:"channel_title"`
	Thumbnail       string `json:"thumbnail"`
	DurationSeconds int    `json:"duration_seconds"`
	Duration        string `json:"duration"`
}

// Client searches videos. Safe for concurrent use.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a client. timeout bounds each HTTP call; minInterval
// spaces consecutive calls (zero disables throttling).
func NewClient(apiKey string, timeout, minInterval time.Duration) *Client {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Client{
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		language: "en",
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// WithBaseURL points the client at another API root (a proxy or a test server).
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// Available returns true if an API key is configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// Search runs a video search and resolves each hit's runtime. An empty hit
// list is not an error.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	if !c.Available() {
		return nil, fmt.Errorf("youtube api key not configured")
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = 8
	}
	safe := req.SafeSearch
	if safe == "" {
		safe = "strict"
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("videoEmbeddable", "true")
	q.Set("safeSearch", safe)
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("q", req.Query)
	q.Set("relevanceLanguage", c.language)
	if req.Duration != "" {
		q.Set("videoDuration", req.Duration)
	}

	body, err := c.get(ctx, "/search", q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var results []SearchResult
	var ids []string
	gjson.GetBytes(body, "items").ForEach(func(_, item gjson.Result) bool {
		id := item.Get("id.videoId").String()
		if id == "" {
			return true
		}
		thumb := item.Get("snippet.thumbnails.medium.url").String()
		if thumb == "" {
			thumb = item.Get("snippet.thumbnails.default.url").String()
		}
		results = append(results, SearchResult{
			VideoID:      id,
			Title:        item.Get("snippet.title").String(),
			ChannelTitle: item.Get("snippet.channelTitle").String(),
			Thumbnail:    thumb,
		})
		ids = append(ids, id)
		return true
	})
	if len(results) == 0 {
		return []SearchResult{}, nil
	}

	durations, err := c.durations(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("videos: %w", err)
	}
	for i := range results {
		secs := durations[results[i].VideoID]
		results[i].DurationSeconds = secs
		results[i].Duration = FormatDuration(secs)
	}
	return results, nil
}

func (c *Client) durations(ctx context.Context, ids []string) (map[string]int, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("part", "contentDetails")
	q.Set("id", strings.Join(ids, ","))

	body, err := c.get(ctx, "/videos", q)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(ids))
	gjson.GetBytes(body, "items").ForEach(func(_, v gjson.Result) bool {
		out[v.Get("id").String()] = ParseISODuration(v.Get("contentDetails.duration").String())
		return true
	})
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error.message").String()
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, msg)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid json response")
	}
	return body, nil
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts an ISO-8601 video duration like "PT1H2M3S" to
// seconds. Unparseable input yields 0.
func ParseISODuration(s string) int {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	return h*3600 + mins*60 + sec
}

// FormatDuration renders seconds as a display label.
func FormatDuration(secs int) string {
	if secs <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d min", secs/60)
}
