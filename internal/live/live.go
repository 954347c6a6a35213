// Package live fetches fresh media for a mood from the search provider, with
// a time-boxed cache, per-mood repeat suppression and a static fallback.
package live

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rcliao/rooted/internal/catalog"
	"github.com/rcliao/rooted/internal/clock"
	"github.com/rcliao/rooted/internal/model"
	"github.com/rcliao/rooted/internal/random"
	"github.com/rcliao/rooted/internal/store"
	"github.com/rcliao/rooted/internal/youtube"
)

// Store key prefixes.
const (
	CachePrefix   = "live_cache:"
	HistoryPrefix = "live_history:"
)

// Provider searches an external video source.
type Provider interface {
	Search(ctx context.Context, req youtube.SearchRequest) ([]youtube.SearchResult, error)
}

// Options configures a Fetcher. Zero values take the defaults noted.
type Options struct {
	Catalog      *catalog.Catalog // catalog.Default()
	Clock        clock.Clock      // clock.Real
	Rand         *random.Source   // time-seeded
	MaxResults   int              // 10
	Timeout      time.Duration    // 8s per provider call
	CacheTTL     time.Duration    // 24h
	HistorySize  int              // 5
	PerCategory  int              // 1
	FallbackSize int              // 2
}

func (o *Options) applyDefaults() {
	if o.Catalog == nil {
		o.Catalog = catalog.Default()
	}
	if o.Clock == nil {
		o.Clock = clock.Real{}
	}
	if o.Rand == nil {
		o.Rand = random.NewTime()
	}
	if o.MaxResults <= 0 {
		o.MaxResults = 10
	}
	if o.Timeout <= 0 {
		o.Timeout = 8 * time.Second
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = 24 * time.Hour
	}
	if o.HistorySize <= 0 {
		o.HistorySize = 5
	}
	if o.PerCategory <= 0 {
		o.PerCategory = 1
	}
	if o.FallbackSize <= 0 {
		o.FallbackSize = 2
	}
}

// Fetcher implements the live content fetch. Safe for concurrent use.
type Fetcher struct {
	provider Provider
	store    store.Store
	opts     Options

	// mu serializes history read-modify-write cycles.
	mu sync.Mutex
}

// New creates a Fetcher. A nil provider always yields the static fallback.
func New(p Provider, s store.Store, opts Options) *Fetcher {
	opts.applyDefaults()
	return &Fetcher{provider: p, store: s, opts: opts}
}

type job struct {
	cat     catalog.LiveCategory
	query   string
	results []youtube.SearchResult
}

// Fetch returns live media items for mood, typically one per weighted
// category. Provider failures fall back to the mood's static media list. The
// only error is ctx's, when the caller abandoned the fetch; nothing is
// written in that case.
func (f *Fetcher) Fetch(ctx context.Context, mood model.Mood) ([]model.ContentItem, error) {
	if f.provider == nil {
		return f.fallback(mood), nil
	}

	var jobs []*job
	for _, cat := range f.opts.Catalog.LiveCategories(mood) {
		if len(cat.Queries) == 0 {
			continue
		}
		jobs = append(jobs, &job{cat: cat, query: random.Pick(f.opts.Rand, cat.Queries)})
	}

	var g errgroup.Group
	for _, j := range jobs {
		g.Go(func() error {
			j.results = f.search(ctx, j.query, f.opts.Catalog.Duration(j.cat.Category))
			return nil // per-category failures degrade to an empty result
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	history := f.History(ctx, mood)
	var items []model.ContentItem
	for _, j := range jobs {
		r := f.opts.Catalog.Duration(j.cat.Category)
		for _, res := range pick(f.opts.Rand, j.results, r, history, f.opts.PerCategory) {
			items = append(items, toItem(res, mood, j.cat.Category))
		}
	}

	if len(items) == 0 {
		log.Warn().Str("mood", string(mood)).Msg("live fetch returned nothing, using fallback")
		return f.fallback(mood), nil
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.Media.ExternalID
	}
	f.recordHistory(ctx, mood, ids)
	log.Debug().Str("mood", string(mood)).Int("items", len(items)).Msg("live items selected")
	return items, nil
}

// search returns cached results when fresh, otherwise queries the provider
// and caches a non-empty response.
func (f *Fetcher) search(ctx context.Context, query string, r catalog.DurationRange) []youtube.SearchResult {
	key := CacheKey(query)
	if cached, ok := f.cached(ctx, key); ok {
		log.Debug().Str("query", query).Msg("live cache hit")
		return cached
	}

	callCtx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	results, err := f.provider.Search(callCtx, youtube.SearchRequest{
		Query:      query,
		MaxResults: f.opts.MaxResults,
		SafeSearch: "strict",
		Duration:   durationHint(r),
	})
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("live search failed")
		return nil
	}
	if len(results) > 0 && ctx.Err() == nil {
		f.storeCache(ctx, key, results)
	}
	return results
}

type cacheEntry struct {
	Data      []youtube.SearchResult `json:"data"`
	Timestamp int64                  `json:"timestamp"` // unix millis
}

// CacheKey hashes a query string into its cache key.
func CacheKey(query string) string {
	h := fnv.New64a()
	h.Write([]byte(query))
	return CachePrefix + strconv.FormatUint(h.Sum64(), 36)
}

func (f *Fetcher) cached(ctx context.Context, key string) ([]youtube.SearchResult, bool) {
	entry := store.Load(ctx, f.store, key, func() cacheEntry { return cacheEntry{} })
	if entry.Timestamp == 0 {
		return nil, false
	}
	age := f.opts.Clock.Now().UnixMilli() - entry.Timestamp
	if age > f.opts.CacheTTL.Milliseconds() {
		if err := f.store.Remove(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to drop expired cache entry")
		}
		return nil, false
	}
	return entry.Data, true
}

func (f *Fetcher) storeCache(ctx context.Context, key string, results []youtube.SearchResult) {
	store.SaveBestEffort(ctx, f.store, key, cacheEntry{
		Data:      results,
		Timestamp: f.opts.Clock.Now().UnixMilli(),
	})
}

// History returns the external ids recently shown for mood, newest first.
func (f *Fetcher) History(ctx context.Context, mood model.Mood) []string {
	return store.Load(ctx, f.store, HistoryPrefix+string(mood), func() []string { return nil })
}

func (f *Fetcher) recordHistory(ctx context.Context, mood model.Mood, ids []string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing := f.History(ctx, mood)
	updated := append(append([]string{}, ids...), existing...)
	if len(updated) > f.opts.HistorySize {
		updated = updated[:f.opts.HistorySize]
	}
	store.SaveBestEffort(ctx, f.store, HistoryPrefix+string(mood), updated)
}

// ClearHistory drops every live history list and cached response.
func (f *Fetcher) ClearHistory(ctx context.Context) error {
	if err := f.store.Clear(ctx, HistoryPrefix); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	if err := f.store.Clear(ctx, CachePrefix); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

func (f *Fetcher) fallback(mood model.Mood) []model.ContentItem {
	items := random.Shuffle(f.opts.Rand, f.opts.Catalog.Fallback(mood))
	if len(items) > f.opts.FallbackSize {
		items = items[:f.opts.FallbackSize]
	}
	return items
}

// durationHint maps a runtime range onto the provider's coarse buckets.
// The provider's "medium" bucket is 4 to 20 minutes.
func durationHint(r catalog.DurationRange) string {
	if r.Min >= 240 && r.Max <= 1200 {
		return "medium"
	}
	return ""
}
