// Package memory keeps the retention-bounded check-in, conversation and
// feedback logs and derives insights from them.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/rcliao/rooted/internal/clock"
	"github.com/rcliao/rooted/internal/model"
	"github.com/rcliao/rooted/internal/store"
)

// Key is the store key of the memory document.
const Key = "memory"

// Patterns are running histograms. They are never decremented by retention.
type Patterns struct {
	CommonMoods    map[string]int `json:"common_moods"`
	CommonEnergies map[string]int `json:"common_energies"`
	CommonEmotions map[string]int `json:"common_emotions"`
	TimeOfDay      map[string]int `json:"time_of_day"`
}

// Summary holds the stored running totals.
type Summary struct {
	LastUpdated   *time.Time `json:"last_updated,omitempty"`
	StreakDays    int        `json:"streak_days"`
	TotalCheckIns int        `json:"total_check_ins"`
}

// Memory is the persisted document.
type Memory struct {
	CheckIns          []model.CheckIn            `json:"check_ins"`
	Conversations     []model.ConversationRecord `json:"conversations"`
	HelpfulActivities []model.ActivityFeedback   `json:"helpful_activities"`
	Patterns          Patterns                   `json:"patterns"`
	Summary           Summary                    `json:"insights"`
}

func empty() Memory {
	m := Memory{}
	m.normalize()
	return m
}

// normalize fills in nil collections left by older or partial documents.
func (m *Memory) normalize() {
	if m.CheckIns == nil {
		m.CheckIns = []model.CheckIn{}
	}
	if m.Conversations == nil {
		m.Conversations = []model.ConversationRecord{}
	}
	if m.HelpfulActivities == nil {
		m.HelpfulActivities = []model.ActivityFeedback{}
	}
	for _, h := range []*map[string]int{
		&m.Patterns.CommonMoods, &m.Patterns.CommonEnergies,
		&m.Patterns.CommonEmotions, &m.Patterns.TimeOfDay,
	} {
		if *h == nil {
			*h = map[string]int{}
		}
	}
}

// Options configures an Engine. Zero values take the defaults noted.
type Options struct {
	Clock           clock.Clock   // clock.Real
	Retention       time.Duration // 30 days
	ConversationCap int           // 50
	FeedbackCap     int           // 30
	MessageLimit    int           // 200 characters
}

// Engine records memory events. Safe for concurrent use.
type Engine struct {
	store store.Store
	opts  Options
	mu    sync.Mutex
}

// New creates an Engine.
func New(s store.Store, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Retention <= 0 {
		opts.Retention = 30 * 24 * time.Hour
	}
	if opts.ConversationCap <= 0 {
		opts.ConversationCap = 50
	}
	if opts.FeedbackCap <= 0 {
		opts.FeedbackCap = 30
	}
	if opts.MessageLimit <= 0 {
		opts.MessageLimit = 200
	}
	return &Engine{store: s, opts: opts}
}

func (e *Engine) load(ctx context.Context) Memory {
	m := store.Load(ctx, e.store, Key, empty)
	m.normalize()
	return m
}

// update runs fn inside a locked read-modify-write cycle. Check-ins outside
// the retention window are purged on every write.
func (e *Engine) update(ctx context.Context, fn func(m *Memory, now time.Time)) Memory {
	e.mu.Lock()
	defer e.mu.Unlock()

	m := e.load(ctx)
	now := e.opts.Clock.Now()
	fn(&m, now)
	m.CheckIns = purge(m.CheckIns, now.Add(-e.opts.Retention))
	store.SaveBestEffort(ctx, e.store, Key, m)
	return m
}

func purge(checkIns []model.CheckIn, cutoff time.Time) []model.CheckIn {
	kept := checkIns[:0]
	for _, c := range checkIns {
		if c.Date.After(cutoff) {
			kept = append(kept, c)
		}
	}
	return kept
}

// RecordCheckIn appends a check-in stamped with the current time and its
// time-of-day bucket, then refreshes histograms and the streak.
func (e *Engine) RecordCheckIn(ctx context.Context, mood, energy string) Memory {
	return e.update(ctx, func(m *Memory, now time.Time) {
		tod := clock.TimeOfDay(now)
		m.CheckIns = append(m.CheckIns, model.CheckIn{Date: now, Mood: mood, Energy: energy, TimeOfDay: tod})
		m.Patterns.CommonMoods[mood]++
		m.Patterns.CommonEnergies[energy]++
		m.Patterns.TimeOfDay[tod]++
		m.Summary.TotalCheckIns++
		m.Summary.LastUpdated = &now
		m.Summary.StreakDays = Streak(m.CheckIns, now)
		log.Debug().Str("mood", mood).Str("energy", energy).Int("streak", m.Summary.StreakDays).Msg("check-in recorded")
	})
}

// RecordConversation appends a truncated message. An empty emotion is
// stored but not counted.
func (e *Engine) RecordConversation(ctx context.Context, text, emotion string) Memory {
	return e.update(ctx, func(m *Memory, now time.Time) {
		m.Conversations = append(m.Conversations, model.ConversationRecord{
			Date:            now,
			UserMessage:     truncate(text, e.opts.MessageLimit),
			DetectedEmotion: emotion,
		})
		if n := len(m.Conversations); n > e.opts.ConversationCap {
			m.Conversations = m.Conversations[n-e.opts.ConversationCap:]
		}
		if emotion != "" {
			m.Patterns.CommonEmotions[emotion]++
		}
	})
}

// RecordActivityFeedback appends whether an activity helped.
func (e *Engine) RecordActivityFeedback(ctx context.Context, activityType, title string, helpful bool) Memory {
	return e.update(ctx, func(m *Memory, now time.Time) {
		m.HelpfulActivities = append(m.HelpfulActivities, model.ActivityFeedback{
			Type:    activityType,
			Title:   title,
			Helpful: helpful,
			Date:    now,
		})
		if n := len(m.HelpfulActivities); n > e.opts.FeedbackCap {
			m.HelpfulActivities = m.HelpfulActivities[n-e.opts.FeedbackCap:]
		}
	})
}

// Snapshot returns the stored document.
func (e *Engine) Snapshot(ctx context.Context) Memory {
	return e.load(ctx)
}

// Insights derives the current insights.
func (e *Engine) Insights(ctx context.Context) model.Insights {
	return Derive(e.load(ctx), e.opts.Clock.Now())
}

// Clear deletes all memory.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.Remove(ctx, Key); err != nil {
		return fmt.Errorf("clear memory: %w", err)
	}
	return nil
}

// truncate cuts s to at most n characters without splitting a rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
