package live

import (
	"fmt"

	"github.com/rcliao/rooted/internal/catalog"
	"github.com/rcliao/rooted/internal/model"
	"github.com/rcliao/rooted/internal/random"
	"github.com/rcliao/rooted/internal/youtube"
)

// pick selects up to count results: in-range runtimes first (all results if
// too few qualify), then not-recently-shown ones (same fallback), then one
// per channel before filling remaining slots from any channel.
func pick(rng *random.Source, results []youtube.SearchResult, r catalog.DurationRange, history []string, count int) []youtube.SearchResult {
	if len(results) == 0 || count <= 0 {
		return nil
	}

	var inRange []youtube.SearchResult
	for _, res := range results {
		if r.Contains(res.DurationSeconds) {
			inRange = append(inRange, res)
		}
	}
	pool := results
	if len(inRange) >= count {
		pool = inRange
	}

	seen := make(map[string]bool, len(history))
	for _, id := range history {
		seen[id] = true
	}
	var fresh []youtube.SearchResult
	for _, res := range pool {
		if !seen[res.VideoID] {
			fresh = append(fresh, res)
		}
	}
	toUse := pool
	if len(fresh) >= count {
		toUse = fresh
	}

	shuffled := random.Shuffle(rng, toUse)
	picked := make([]youtube.SearchResult, 0, count)
	pickedIDs := map[string]bool{}
	channels := map[string]bool{}
	for _, res := range shuffled {
		if len(picked) >= count {
			break
		}
		if !channels[res.ChannelTitle] && !pickedIDs[res.VideoID] {
			picked = append(picked, res)
			pickedIDs[res.VideoID] = true
			channels[res.ChannelTitle] = true
		}
	}
	for _, res := range shuffled {
		if len(picked) >= count {
			break
		}
		if !pickedIDs[res.VideoID] {
			picked = append(picked, res)
			pickedIDs[res.VideoID] = true
		}
	}
	return picked
}

func toItem(res youtube.SearchResult, mood model.Mood, category string) model.ContentItem {
	return model.ContentItem{
		ID:            fmt.Sprintf("live-%s-%s-%s", mood, category, res.VideoID),
		Type:          model.TypeMedia,
		Category:      category,
		Title:         res.Title,
		Subtitle:      res.ChannelTitle,
		RelevanceBase: 8,
		Live:          true,
		Media: &model.Media{
			Platform:        "youtube",
			ExternalID:      res.VideoID,
			Channel:         res.ChannelTitle,
			Thumbnail:       res.Thumbnail,
			Duration:        res.Duration,
			DurationSeconds: res.DurationSeconds,
		},
	}
}
