// Package recommend selects ranked wellness activities for a mood from the
// static catalog and the live fetcher, suppressing recently shown items.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/rcliao/rooted/internal/catalog"
	"github.com/rcliao/rooted/internal/model"
	"github.com/rcliao/rooted/internal/random"
	"github.com/rcliao/rooted/internal/store"
)

// RecentKey holds the recently shown item ids, newest first.
const RecentKey = "recent_shown"

// TopCount is the size of Result.TopPicks.
const TopCount = 3

// Items sampled per content category.
var sampleCounts = struct {
	Media, Breathing, Micro, Journal, Info, Recipe int
}{Media: 2, Breathing: 1, Micro: 2, Journal: 1, Info: 1, Recipe: 1}

// LiveSource fetches live media for a mood.
type LiveSource interface {
	Fetch(ctx context.Context, mood model.Mood) ([]model.ContentItem, error)
}

// PreferenceSource supplies learned activity preferences.
type PreferenceSource interface {
	Insights(ctx context.Context) model.Insights
}

// Options configures a Selector. Zero values take the defaults noted.
type Options struct {
	Catalog       *catalog.Catalog // catalog.Default()
	Rand          *random.Source   // time-seeded
	Live          LiveSource       // optional
	Preferences   PreferenceSource // optional
	RecentCap     int              // 30
	RecentExclude int              // 15
}

// Request is one recommendation call. Energy and Goals only influence
// Result.ActivityType.
type Request struct {
	Mood    model.Mood
	Signals []model.Signal
	Energy  string
	Goals   []string
}

// Result is a ranked recommendation set.
type Result struct {
	TopPicks           []model.ContentItem `json:"top_picks"`
	AllRecommendations []model.ContentItem `json:"all_recommendations"`
	MoreOptions        []model.ContentItem `json:"more_options"`
	ActivityType       string              `json:"activity_type,omitempty"`
}

// Selector implements the recommendation flow. Safe for concurrent use.
type Selector struct {
	store store.Store
	opts  Options

	// mu serializes recency read-modify-write cycles.
	mu sync.Mutex
}

// New creates a Selector.
func New(s store.Store, opts Options) *Selector {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Rand == nil {
		opts.Rand = random.NewTime()
	}
	if opts.RecentCap <= 0 {
		opts.RecentCap = 30
	}
	if opts.RecentExclude <= 0 || opts.RecentExclude > opts.RecentCap {
		opts.RecentExclude = min(15, opts.RecentCap)
	}
	return &Selector{store: s, opts: opts}
}

// Recommend samples, scores and ranks content for req. The only error is
// ctx's when the live fetch was abandoned, in which case nothing is recorded.
func (s *Selector) Recommend(ctx context.Context, req Request) (Result, error) {
	res := Result{
		TopPicks:           []model.ContentItem{},
		AllRecommendations: []model.ContentItem{},
		MoreOptions:        []model.ContentItem{},
	}

	p := s.opts.Catalog.Partition(req.Mood)
	if p.Empty() {
		log.Warn().Str("mood", string(req.Mood)).Msg("no catalog content for mood")
		return res, nil
	}

	recent := s.Recent(ctx)
	if len(recent) > s.opts.RecentExclude {
		recent = recent[:s.opts.RecentExclude]
	}
	exclude := make(map[string]bool, len(recent))
	for _, id := range recent {
		exclude[id] = true
	}

	rng := s.opts.Rand
	var live []model.ContentItem
	if s.opts.Live != nil {
		var err error
		live, err = s.opts.Live.Fetch(ctx, req.Mood)
		if err != nil {
			return Result{}, fmt.Errorf("fetch live: %w", err)
		}
	}

	var static []model.ContentItem
	static = append(static, pickRandom(rng, p.Media, sampleCounts.Media, exclude)...)
	nMedia := len(static)
	static = append(static, pickRandom(rng, p.Breathing, sampleCounts.Breathing, exclude)...)
	static = append(static, pickRandom(rng, p.Micro, sampleCounts.Micro, exclude)...)
	static = append(static, pickRandom(rng, p.Journal, sampleCounts.Journal, exclude)...)
	static = append(static, pickRandom(rng, p.Info, sampleCounts.Info, exclude)...)
	static = append(static, pickRandom(rng, p.Recipe, sampleCounts.Recipe, exclude)...)

	// Live media sits right after the static media picks.
	items := make([]model.ContentItem, 0, len(static)+len(live))
	items = append(items, static[:nMedia]...)
	items = append(items, live...)
	items = append(items, static[nMedia:]...)

	primary := primarySignal(req.Signals)
	for i := range items {
		items[i].Reason = items[i].Signal
		if primary != "" {
			items[i].Reason = primary
		}
		items[i].Score = Score(items[i], req.Signals)
	}

	sorted := make([]model.ContentItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	top := sorted[:min(TopCount, len(sorted))]

	inTop := make(map[string]bool, len(top))
	for _, it := range top {
		inTop[it.ID] = true
	}
	res.TopPicks = append(res.TopPicks, top...)
	res.AllRecommendations = append(res.AllRecommendations, items...)
	for _, it := range items {
		if !inTop[it.ID] {
			res.MoreOptions = append(res.MoreOptions, it)
		}
	}

	if s.opts.Preferences != nil {
		ins := s.opts.Preferences.Insights(ctx)
		res.ActivityType = SelectActivityType(rng, string(req.Mood), req.Energy, req.Goals, ActivityPrefs{
			Preferred: ins.PreferredActivityTypes,
			Avoid:     ins.AvoidActivityTypes,
		})
	}

	ids := make([]string, 0, len(static))
	for _, it := range static {
		ids = append(ids, it.ID)
	}
	s.recordShown(ctx, ids)
	return res, nil
}

// Score computes an item's relevance for the request signals. A zero
// relevance base counts as 5.
func Score(item model.ContentItem, signals []model.Signal) int {
	score := item.RelevanceBase
	if score == 0 {
		score = 5
	}
	if model.ContainsSignal(signals, item.Signal) {
		score += 5
	}
	switch item.Type {
	case model.TypeBreathing, model.TypeMicro:
		score += 2
	case model.TypeMedia:
		score++
	}
	return score
}

func primarySignal(signals []model.Signal) model.Signal {
	if len(signals) == 0 {
		return ""
	}
	return signals[0]
}

// pickRandom samples count items, preferring ones not in exclude. When too
// few fresh items remain it samples from the full list instead.
func pickRandom(rng *random.Source, items []model.ContentItem, count int, exclude map[string]bool) []model.ContentItem {
	if len(items) == 0 || count <= 0 {
		return nil
	}
	var fresh []model.ContentItem
	for _, it := range items {
		if !exclude[it.ID] {
			fresh = append(fresh, it)
		}
	}
	pool := items
	if len(fresh) >= count {
		pool = fresh
	}
	out := random.Shuffle(rng, pool)
	if len(out) > count {
		out = out[:count]
	}
	return out
}

// Recent returns the recently shown ids, newest first.
func (s *Selector) Recent(ctx context.Context) []string {
	return store.Load(ctx, s.store, RecentKey, func() []string { return nil })
}

func (s *Selector) recordShown(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append(append([]string{}, ids...), s.Recent(ctx)...)
	if len(updated) > s.opts.RecentCap {
		updated = updated[:s.opts.RecentCap]
	}
	if store.SaveBestEffort(ctx, s.store, RecentKey, updated) {
		log.Debug().Int("shown", len(ids)).Int("recent", len(updated)).Msg("recency updated")
	}
}

// ClearRecent forgets every recently shown id.
func (s *Selector) ClearRecent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(ctx, RecentKey); err != nil {
		return fmt.Errorf("clear recent: %w", err)
	}
	return nil
}
