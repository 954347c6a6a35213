package tracking

import (
	"context"
	"time"

	"github.com/rcliao/rooted/internal/clock"
	"github.com/rcliao/rooted/internal/model"
)

// DefaultRecentLimit is the number of recent activities returned when no
// limit is given.
const DefaultRecentLimit = 5

// TodayStats summarizes today's engagement.
type TodayStats struct {
	CompletedToday int `json:"completed_today"`
	VerifiedToday  int `json:"verified_today"`
	EstimatedToday int `json:"estimated_today"`
	MinutesToday   int `json:"minutes_today"`
}

// Stats is the combined view for display.
type Stats struct {
	TodayStats
	Streak         int                    `json:"streak"`
	RecentActivity []model.RecentActivity `json:"recent_activity"`
}

// MethodCounts tallies completions per method.
type MethodCounts struct {
	Verified  int `json:"verified"`
	Estimated int `json:"estimated"`
}

func todayStats(d Data, now time.Time) TodayStats {
	s := d.DailyStats[clock.DateKey(now)]
	return TodayStats{
		CompletedToday: s.Verified + s.Estimated,
		VerifiedToday:  s.Verified,
		EstimatedToday: s.Estimated,
		MinutesToday:   s.Minutes,
	}
}

func recent(d Data, limit int) []model.RecentActivity {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	out := d.RecentActivity
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TodayStats returns today's counters.
func (e *Engine) TodayStats(ctx context.Context) TodayStats {
	return todayStats(e.load(ctx), e.opts.Clock.Now())
}

// RecentActivity returns up to limit recent completions, newest first.
func (e *Engine) RecentActivity(ctx context.Context, limit int) []model.RecentActivity {
	return recent(e.load(ctx), limit)
}

// IsCompletedToday reports whether itemID was completed today.
func (e *Engine) IsCompletedToday(ctx context.Context, itemID string) bool {
	today := clock.DateKey(e.opts.Clock.Now())
	for _, c := range e.load(ctx).Completions {
		if c.ItemID == itemID && c.DateKey == today {
			return true
		}
	}
	return false
}

// CompletionsByType tallies today's completions per content type.
func (e *Engine) CompletionsByType(ctx context.Context) map[string]MethodCounts {
	today := clock.DateKey(e.opts.Clock.Now())
	out := map[string]MethodCounts{}
	for _, c := range e.load(ctx).Completions {
		if c.DateKey != today {
			continue
		}
		mc := out[c.Type]
		if c.Method == model.MethodVerified {
			mc.Verified++
		} else {
			mc.Estimated++
		}
		out[c.Type] = mc
	}
	return out
}

// Streak returns the current engagement streak.
func (e *Engine) Streak(ctx context.Context) int {
	return Streak(e.load(ctx).DailyStats, e.opts.Clock.Now(), e.opts.MaxStreakDays)
}

// AllStats returns today's counters, the streak and the latest activity.
func (e *Engine) AllStats(ctx context.Context) Stats {
	d := e.load(ctx)
	now := e.opts.Clock.Now()
	return Stats{
		TodayStats:     todayStats(d, now),
		Streak:         Streak(d.DailyStats, now, e.opts.MaxStreakDays),
		RecentActivity: recent(d, DefaultRecentLimit),
	}
}

// Streak counts consecutive qualifying days ending today, or ending
// yesterday when today does not qualify yet. At most maxDays are scanned.
func Streak(stats map[string]model.DailyStat, now time.Time, maxDays int) int {
	start := 0
	if !stats[clock.DateKey(now)].Counts() {
		start = 1
	}
	streak := 0
	for streak < maxDays && stats[clock.DateKey(clock.DaysAgo(now, start+streak))].Counts() {
		streak++
	}
	return streak
}
