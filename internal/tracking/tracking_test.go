package tracking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/rooted/internal/clock"
	"github.com/rcliao/rooted/internal/model"
	"github.com/rcliao/rooted/internal/store"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

func newTestEngine(t *testing.T) (*Engine, *clock.Fixed, store.Store) {
	t.Helper()
	s := store.NewMemStore()
	clk := &clock.Fixed{T: base}
	return New(s, Options{Clock: clk}), clk, s
}

type failingStore struct{ store.Store }

func (failingStore) Set(context.Context, string, string) error { return errors.New("unavailable") }

func TestSessionLifecycle(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	ctx := context.Background()

	sess := e.StartSession(ctx, "str-br-1", "breathing", "Box Breathing")
	assert.Equal(t, base, sess.StartTime)
	assert.True(t, e.HasActiveSession(ctx, "str-br-1"))

	clk.Advance(5*time.Minute + 20*time.Second)
	assert.Equal(t, 320, e.SessionDuration(ctx, "str-br-1"))

	end, ok := e.EndSession(ctx, "str-br-1")
	require.True(t, ok)
	assert.Equal(t, SessionEnd{DurationSeconds: 320, Type: "breathing", Title: "Box Breathing"}, end)
	assert.False(t, e.HasActiveSession(ctx, "str-br-1"))
	assert.Equal(t, 5, e.TodayStats(ctx).MinutesToday)
	assert.Equal(t, 0, e.TodayStats(ctx).CompletedToday, "ending a session is not a completion")
}

func TestEndSessionWithoutSessionIsNoop(t *testing.T) {
	e, _, s := newTestEngine(t)
	ctx := context.Background()
	calls := 0
	e.Subscribe(func(Data) { calls++ })

	_, ok := e.EndSession(ctx, "missing")
	assert.False(t, ok)
	assert.Equal(t, 0, calls)
	keys, _ := s.Keys(ctx, "")
	assert.Empty(t, keys)
	assert.Equal(t, 0, e.SessionDuration(ctx, "missing"))
}

func TestRestartingSessionResetsStart(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	ctx := context.Background()

	e.StartSession(ctx, "yt-1", "youtube", "")
	clk.Advance(time.Minute)
	e.StartSession(ctx, "yt-1", "youtube", "")
	clk.Advance(30 * time.Second)

	end, ok := e.EndSession(ctx, "yt-1")
	require.True(t, ok)
	assert.Equal(t, 30, end.DurationSeconds)
}

func TestMarkCompletedUsesSessionDuration(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	ctx := context.Background()

	e.StartSession(ctx, "med-1", "meditation", "Body Scan")
	clk.Advance(90 * time.Second)
	ev := e.MarkCompleted(ctx, Completion{ItemID: "med-1", Type: "meditation", Method: model.MethodVerified, Title: "Body Scan", DurationSeconds: 1000})

	assert.Equal(t, 90, ev.DurationSeconds)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "2026-03-10", ev.DateKey)
	assert.False(t, e.HasActiveSession(ctx, "med-1"))

	today := e.TodayStats(ctx)
	assert.Equal(t, TodayStats{CompletedToday: 1, VerifiedToday: 1, MinutesToday: 2}, today)
}

func TestMarkCompletedCounts(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()

	e.MarkCompleted(ctx, Completion{ItemID: "a", Type: "journal", Method: model.MethodEstimated})
	e.MarkCompleted(ctx, Completion{ItemID: "b", Type: "journal", Method: "tapped"})
	e.MarkCompleted(ctx, Completion{ItemID: "c", Type: "breathing", Method: model.MethodVerified, DurationSeconds: 240})

	assert.Equal(t, TodayStats{CompletedToday: 3, VerifiedToday: 1, EstimatedToday: 2, MinutesToday: 4}, e.TodayStats(ctx))
	assert.Equal(t, map[string]MethodCounts{
		"journal":   {Estimated: 2},
		"breathing": {Verified: 1},
	}, e.CompletionsByType(ctx))
	assert.True(t, e.IsCompletedToday(ctx, "b"))
	assert.False(t, e.IsCompletedToday(ctx, "z"))
}

func TestCompletionsAreScopedToLocalDay(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	ctx := context.Background()

	clk.Set(time.Date(2026, 3, 10, 23, 50, 0, 0, time.Local))
	e.MarkCompleted(ctx, Completion{ItemID: "late", Type: "micro", Method: model.MethodVerified})
	clk.Advance(20 * time.Minute)

	assert.False(t, e.IsCompletedToday(ctx, "late"))
	assert.Equal(t, 0, e.TodayStats(ctx).CompletedToday)
	assert.Empty(t, e.CompletionsByType(ctx))
}

func TestRecentActivity(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	ctx := context.Background()

	for i := range 25 {
		e.MarkCompleted(ctx, Completion{ItemID: fmt.Sprintf("item-%d", i), Type: "micro", Method: model.MethodEstimated})
		clk.Advance(time.Second)
	}
	assert.Len(t, e.Snapshot(ctx).RecentActivity, 20)
	assert.Len(t, e.Snapshot(ctx).Completions, 25)

	got := e.RecentActivity(ctx, 0)
	require.Len(t, got, DefaultRecentLimit)
	assert.Equal(t, "item-24", got[0].ItemID)
	assert.Len(t, e.RecentActivity(ctx, 50), 20)
}

func TestStreakRules(t *testing.T) {
	key := func(daysAgo int) string { return clock.DateKey(clock.DaysAgo(base, daysAgo)) }
	tests := []struct {
		name  string
		stats map[string]model.DailyStat
		want  int
	}{
		{"empty", nil, 0},
		{"one verified today", map[string]model.DailyStat{key(0): {Verified: 1}}, 1},
		{"one estimated today", map[string]model.DailyStat{key(0): {Estimated: 1}}, 0},
		{"two estimated today", map[string]model.DailyStat{key(0): {Estimated: 2}}, 1},
		{"minutes alone", map[string]model.DailyStat{key(0): {Minutes: 40}}, 0},
		{"today pending", map[string]model.DailyStat{key(0): {Estimated: 1}, key(1): {Verified: 1}, key(2): {Estimated: 2}}, 2},
		{"today and earlier", map[string]model.DailyStat{key(0): {Verified: 2}, key(1): {Verified: 1}}, 2},
		{"gap stops scan", map[string]model.DailyStat{key(0): {Verified: 1}, key(2): {Verified: 1}}, 1},
		{"stale", map[string]model.DailyStat{key(2): {Verified: 1}, key(3): {Verified: 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.stats, base, 365))
		})
	}
}

func TestStreakIsBounded(t *testing.T) {
	stats := map[string]model.DailyStat{}
	for i := range 400 {
		stats[clock.DateKey(clock.DaysAgo(base, i))] = model.DailyStat{Verified: 1}
	}
	assert.Equal(t, 365, Streak(stats, base, 365))
}

func TestEngineStreakAcrossDays(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	ctx := context.Background()

	e.MarkCompleted(ctx, Completion{ItemID: "a", Type: "breathing", Method: model.MethodVerified})
	clk.Advance(24 * time.Hour)
	e.MarkCompleted(ctx, Completion{ItemID: "b", Type: "journal", Method: model.MethodEstimated})
	assert.Equal(t, 1, e.Streak(ctx), "one estimated completion does not count yet")

	e.MarkCompleted(ctx, Completion{ItemID: "c", Type: "journal", Method: model.MethodEstimated})
	all := e.AllStats(ctx)
	assert.Equal(t, 2, all.Streak)
	assert.Equal(t, 2, all.CompletedToday)
	assert.Len(t, all.RecentActivity, 3)
}

func TestSubscribeReceivesEveryWrite(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()

	var got []Data
	id := e.Subscribe(func(d Data) { got = append(got, d) })

	e.StartSession(ctx, "x", "yoga", "")
	e.MarkCompleted(ctx, Completion{ItemID: "x", Type: "yoga", Method: model.MethodVerified})
	require.Len(t, got, 2)
	assert.Len(t, got[0].Sessions, 1)
	assert.Empty(t, got[1].Sessions)
	assert.Len(t, got[1].Completions, 1)

	require.NoError(t, e.Clear(ctx))
	require.Len(t, got, 3)
	assert.Empty(t, got[2].Completions)

	assert.True(t, e.Unsubscribe(id))
	assert.False(t, e.Unsubscribe(id))
	e.StartSession(ctx, "y", "yoga", "")
	assert.Len(t, got, 3)
}

func TestFailedWritesDoNotBroadcast(t *testing.T) {
	e := New(failingStore{store.NewMemStore()}, Options{Clock: &clock.Fixed{T: base}})
	ctx := context.Background()
	calls := 0
	e.Subscribe(func(Data) { calls++ })

	e.StartSession(ctx, "x", "yoga", "")
	ev := e.MarkCompleted(ctx, Completion{ItemID: "x", Type: "yoga", Method: model.MethodVerified})
	assert.Equal(t, "x", ev.ItemID)
	assert.Equal(t, 0, calls)
	assert.False(t, e.HasActiveSession(ctx, "x"))
	assert.Equal(t, TodayStats{}, e.TodayStats(ctx))
}

func TestMalformedDocumentFallsBack(t *testing.T) {
	e, _, s := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, Key, "not json"))

	assert.Equal(t, 0, e.Streak(ctx))
	e.MarkCompleted(ctx, Completion{ItemID: "a", Type: "micro", Method: model.MethodVerified})
	assert.Equal(t, 1, e.TodayStats(ctx).VerifiedToday)
}
