// Package tracking records engagement sessions and completions and derives
// daily stats and the engagement streak.
package tracking

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/rcliao/rooted/internal/clock"
	"github.com/rcliao/rooted/internal/model"
	"github.com/rcliao/rooted/internal/store"
)

// Key is the store key of the tracking document.
const Key = "tracking"

// Data is the persisted tracking document.
type Data struct {
	Sessions       map[string]model.TrackingSession `json:"sessions"`
	Completions    []model.CompletionEvent          `json:"completions"`
	DailyStats     map[string]model.DailyStat       `json:"daily_stats"`
	RecentActivity []model.RecentActivity           `json:"recent_activity"`
}

func empty() Data {
	d := Data{}
	d.normalize()
	return d
}

func (d *Data) normalize() {
	if d.Sessions == nil {
		d.Sessions = map[string]model.TrackingSession{}
	}
	if d.Completions == nil {
		d.Completions = []model.CompletionEvent{}
	}
	if d.DailyStats == nil {
		d.DailyStats = map[string]model.DailyStat{}
	}
	if d.RecentActivity == nil {
		d.RecentActivity = []model.RecentActivity{}
	}
}

// Options configures an Engine. Zero values take the defaults noted.
type Options struct {
	Clock         clock.Clock // clock.Real
	RecentCap     int         // 20
	MaxStreakDays int         // 365
}

// Engine tracks engagement. Safe for concurrent use.
type Engine struct {
	store store.Store
	opts  Options

	// mu serializes read-modify-write cycles and guards entropy.
	mu      sync.Mutex
	entropy *rand.Rand

	listeners
}

// New creates an Engine.
func New(s store.Store, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.RecentCap <= 0 {
		opts.RecentCap = 20
	}
	if opts.MaxStreakDays <= 0 {
		opts.MaxStreakDays = 365
	}
	return &Engine{
		store:     s,
		opts:      opts,
		entropy:   rand.New(rand.NewSource(time.Now().UnixNano())),
		listeners: listeners{subs: map[SubscriptionID]Listener{}},
	}
}

func (e *Engine) load(ctx context.Context) Data {
	d := store.Load(ctx, e.store, Key, empty)
	d.normalize()
	return d
}

// update runs fn in a locked read-modify-write cycle and broadcasts the new
// document after a successful write. fn returns false to skip the write.
func (e *Engine) update(ctx context.Context, fn func(d *Data, now time.Time) bool) {
	e.mu.Lock()
	d := e.load(ctx)
	now := e.opts.Clock.Now()
	if !fn(&d, now) {
		e.mu.Unlock()
		return
	}
	ok := store.SaveBestEffort(ctx, e.store, Key, d)
	e.mu.Unlock()

	if ok {
		e.broadcast(d)
	}
}

func (e *Engine) newID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), e.entropy).String()
}

func elapsedSeconds(start, now time.Time) int {
	return int(now.Sub(start) / time.Second)
}

func minutes(secs int) int {
	return int(math.Round(float64(secs) / 60))
}

// StartSession begins, or restarts, the session for itemID.
func (e *Engine) StartSession(ctx context.Context, itemID, contentType, title string) model.TrackingSession {
	var sess model.TrackingSession
	e.update(ctx, func(d *Data, now time.Time) bool {
		if _, ok := d.Sessions[itemID]; ok {
			log.Debug().Str("item", itemID).Msg("restarting active session")
		}
		sess = model.TrackingSession{StartTime: now, Type: contentType, Title: title}
		d.Sessions[itemID] = sess
		return true
	})
	return sess
}

// SessionEnd describes a finished session.
type SessionEnd struct {
	DurationSeconds int    `json:"duration_seconds"`
	Type            string `json:"type"`
	Title           string `json:"title,omitempty"`
}

// EndSession closes the session for itemID and adds its minutes to today's
// stats. It reports false when no session was active.
func (e *Engine) EndSession(ctx context.Context, itemID string) (SessionEnd, bool) {
	var (
		end   SessionEnd
		found bool
	)
	e.update(ctx, func(d *Data, now time.Time) bool {
		sess, ok := d.Sessions[itemID]
		if !ok {
			return false
		}
		found = true
		end = SessionEnd{DurationSeconds: elapsedSeconds(sess.StartTime, now), Type: sess.Type, Title: sess.Title}

		key := clock.DateKey(now)
		stat := d.DailyStats[key]
		stat.Minutes += minutes(end.DurationSeconds)
		d.DailyStats[key] = stat
		delete(d.Sessions, itemID)
		return true
	})
	return end, found
}

// SessionDuration returns the elapsed seconds of the active session for
// itemID, or zero.
func (e *Engine) SessionDuration(ctx context.Context, itemID string) int {
	sess, ok := e.load(ctx).Sessions[itemID]
	if !ok {
		return 0
	}
	return elapsedSeconds(sess.StartTime, e.opts.Clock.Now())
}

// HasActiveSession reports whether itemID has an open session.
func (e *Engine) HasActiveSession(ctx context.Context, itemID string) bool {
	_, ok := e.load(ctx).Sessions[itemID]
	return ok
}

// Completion is the input to MarkCompleted.
type Completion struct {
	ItemID          string
	Type            string
	Method          model.CompletionMethod
	Title           string
	DurationSeconds int
}

// MarkCompleted records a completion. An active session for the item is
// ended and its elapsed time replaces c.DurationSeconds. Methods other than
// verified count as estimated.
func (e *Engine) MarkCompleted(ctx context.Context, c Completion) model.CompletionEvent {
	if c.Method != model.MethodVerified {
		c.Method = model.MethodEstimated
	}

	var ev model.CompletionEvent
	e.update(ctx, func(d *Data, now time.Time) bool {
		if sess, ok := d.Sessions[c.ItemID]; ok {
			c.DurationSeconds = elapsedSeconds(sess.StartTime, now)
			delete(d.Sessions, c.ItemID)
		}

		key := clock.DateKey(now)
		ev = model.CompletionEvent{
			ID:              e.newID(now),
			ItemID:          c.ItemID,
			Type:            c.Type,
			Method:          c.Method,
			Title:           c.Title,
			DurationSeconds: c.DurationSeconds,
			Timestamp:       now,
			DateKey:         key,
		}
		d.Completions = append(d.Completions, ev)

		stat := d.DailyStats[key]
		if c.Method == model.MethodVerified {
			stat.Verified++
		} else {
			stat.Estimated++
		}
		if c.DurationSeconds > 0 {
			stat.Minutes += minutes(c.DurationSeconds)
		}
		d.DailyStats[key] = stat

		d.RecentActivity = append([]model.RecentActivity{{
			ID:        ev.ID,
			ItemID:    ev.ItemID,
			Type:      ev.Type,
			Method:    ev.Method,
			Title:     ev.Title,
			Timestamp: now,
		}}, d.RecentActivity...)
		if len(d.RecentActivity) > e.opts.RecentCap {
			d.RecentActivity = d.RecentActivity[:e.opts.RecentCap]
		}
		log.Debug().Str("item", c.ItemID).Str("method", string(c.Method)).Int("secs", c.DurationSeconds).Msg("completion recorded")
		return true
	})
	return ev
}

// Snapshot returns the stored document.
func (e *Engine) Snapshot(ctx context.Context) Data {
	return e.load(ctx)
}

// Clear deletes all tracking data and broadcasts the empty document.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	err := e.store.Remove(ctx, Key)
	e.mu.Unlock()
	if err != nil {
		return fmt.Errorf("clear tracking: %w", err)
	}
	e.broadcast(empty())
	return nil
}
