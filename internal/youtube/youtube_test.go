package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", 5*time.Second, 0).WithBaseURL(server.URL)
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			assert.Equal(t, "calm yoga", r.URL.Query().Get("q"))
			assert.Equal(t, "strict", r.URL.Query().Get("safeSearch"))
			assert.Equal(t, "10", r.URL.Query().Get("maxResults"))
			assert.Equal(t, "true", r.URL.Query().Get("videoEmbeddable"))
			fmt.Fprint(w, `{"items":[
				{"id":{"videoId":"v1"},"snippet":{"title":"Calm Yoga","channelTitle":"Chan A","thumbnails":{"medium":{"url":"http://m/1.jpg"}}}},
				{"id":{"channelId":"skip-me"},"snippet":{"title":"A channel"}},
				{"id":{"videoId":"v2"},"snippet":{"title":"Slow Flow","channelTitle":"Chan B","thumbnails":{"default":{"url":"http://d/2.jpg"}}}}
			]}`)
		case "/videos":
			assert.Equal(t, "v1,v2", r.URL.Query().Get("id"))
			fmt.Fprint(w, `{"items":[
				{"id":"v1","contentDetails":{"duration":"PT15M30S"}},
				{"id":"v2","contentDetails":{"duration":"PT1H"}}
			]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	results, err := c.Search(context.Background(), SearchRequest{Query: "calm yoga", MaxResults: 10})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, SearchResult{
		VideoID: "v1", Title: "Calm Yoga", ChannelTitle: "Chan A", Thumbnail: "http://m/1.jpg",
		DurationSeconds: 930, Duration: "15 min",
	}, results[0])
	assert.Equal(t, "http://d/2.jpg", results[1].Thumbnail)
	assert.Equal(t, 3600, results[1].DurationSeconds)
}

func TestSearchEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("videos must not be called for an empty search")
		}
		fmt.Fprint(w, `{"items":[]}`)
	})

	results, err := c.Search(context.Background(), SearchRequest{Query: "nothing"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchNon200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
	})

	_, err := c.Search(context.Background(), SearchRequest{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestSearchRequiresKey(t *testing.T) {
	c := NewClient("", time.Second, 0)
	assert.False(t, c.Available())
	_, err := c.Search(context.Background(), SearchRequest{Query: "x"})
	assert.Error(t, err)
}

func TestSearchHonorsContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"items":[]}`)
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Search(ctx, SearchRequest{Query: "slow"})
	assert.Error(t, err)
}

func TestParseISODuration(t *testing.T) {
	tests := map[string]int{
		"PT10M":    600,
		"PT1H2M3S": 3723,
		"PT45S":    45,
		"":         0,
		"P1D":      0,
		"garbage":  0,
		"PT20M10S": 1210,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseISODuration(in), in)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "Unknown", FormatDuration(0))
	assert.Equal(t, "10 min", FormatDuration(630))
}
