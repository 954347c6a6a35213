package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/rooted/internal/clock"
	"github.com/rcliao/rooted/internal/model"
)

// CallbackKind names which memory callback applies to a response.
type CallbackKind string

const (
	CallbackNone    CallbackKind = ""
	CallbackStreak  CallbackKind = "streak"
	CallbackTrend   CallbackKind = "trend"
	CallbackPattern CallbackKind = "pattern"
	CallbackTime    CallbackKind = "time"
)

// frequentMinimum is how many check-ins make a recurring mood or usual time worth noting.
const frequentMinimum = 5

// Streak tiers.
const (
	TierShort  = "short"
	TierMedium = "medium"
	TierLong   = "long"
)

// Callback is at most one memory-aware remark for a response.
type Callback struct {
	Kind   CallbackKind `json:"kind,omitempty"`
	Tier   string       `json:"tier,omitempty"`
	Detail string       `json:"detail,omitempty"`
	Text   string       `json:"text,omitempty"`
}

// SelectCallback picks one callback in priority order: a streak of three or
// more days, then a mood trend, then a recurring mood or energy, then a
// check-in outside the usual time of day. Users without history get none.
func SelectCallback(ins model.Insights, now time.Time) Callback {
	if !ins.HasHistory {
		return Callback{}
	}

	if tier := streakTier(ins.StreakDays); tier != "" {
		return Callback{Kind: CallbackStreak, Tier: tier, Text: streakText(ins.StreakDays, tier)}
	}

	switch ins.MoodTrend {
	case model.TrendImproving:
		return Callback{Kind: CallbackTrend, Detail: ins.MoodTrend, Text: "Things seem to be moving in a good direction lately."}
	case model.TrendDeclining:
		return Callback{Kind: CallbackTrend, Detail: ins.MoodTrend, Text: "The last stretch has been harder. That's noticed."}
	}

	switch {
	case ins.MostCommonMood == "stressed":
		return Callback{Kind: CallbackPattern, Detail: "stressed", Text: "Stress has been showing up a lot. That's heavy to carry."}
	case ins.MostCommonEnergy == "low":
		return Callback{Kind: CallbackPattern, Detail: "low_energy", Text: "Your energy has been low lately. Gentle is fine."}
	case (ins.MostCommonMood == "good" || ins.MostCommonMood == "great") && ins.TotalCheckIns >= frequentMinimum:
		return Callback{Kind: CallbackPattern, Detail: ins.MostCommonMood, Text: "You've been feeling good more often than not."}
	}

	if ins.PreferredTime != "" && ins.TotalCheckIns >= frequentMinimum {
		if current := clock.TimeOfDay(now); current != ins.PreferredTime {
			return Callback{
				Kind:   CallbackTime,
				Detail: ins.PreferredTime,
				Text:   fmt.Sprintf("You usually check in during the %s. This is different.", ins.PreferredTime),
			}
		}
	}
	return Callback{}
}

// Callback selects the memory-aware remark for the current moment.
func (e *Engine) Callback(ctx context.Context) Callback {
	return SelectCallback(e.Insights(ctx), e.opts.Clock.Now())
}

func streakTier(days int) string {
	switch {
	case days >= 14:
		return TierLong
	case days >= 7:
		return TierMedium
	case days >= 3:
		return TierShort
	default:
		return ""
	}
}

func streakText(days int, tier string) string {
	switch tier {
	case TierLong:
		return fmt.Sprintf("%d days of showing up. That's commitment.", days)
	case TierMedium:
		return "A full week of check-ins. That counts."
	default:
		return fmt.Sprintf("%d days in a row. Keep it going.", days)
	}
}
