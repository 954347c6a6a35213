package memory

import (
	"sort"
	"time"

	"github.com/rcliao/rooted/internal/clock"
	"github.com/rcliao/rooted/internal/model"
)

const (
	trendWindow    = 7
	trendMinimum   = 3
	trendThreshold = 0.5

	historyMinimum  = 3
	feedbackMinimum = 3

	preferenceMinRatings = 2
	preferredRatio       = 0.7
	avoidRatio           = 0.3
)

// moodScores maps check-in moods onto a 1-5 scale. Unlisted moods score 3.
var moodScores = map[string]float64{
	"great":    5,
	"good":     4,
	"okay":     3,
	"low":      2,
	"stressed": 1,
}

// Derive computes insights from a memory document as of now.
func Derive(m Memory, now time.Time) model.Insights {
	preferred, avoid := ActivityPreferences(m.HelpfulActivities)
	return model.Insights{
		TotalCheckIns:          m.Summary.TotalCheckIns,
		StreakDays:             Streak(m.CheckIns, now),
		MostCommonMood:         mostCommon(m.Patterns.CommonMoods),
		MostCommonEnergy:       mostCommon(m.Patterns.CommonEnergies),
		MostCommonEmotion:      mostCommon(m.Patterns.CommonEmotions),
		PreferredTime:          mostCommon(m.Patterns.TimeOfDay),
		MoodTrend:              Trend(m.CheckIns),
		HasHistory:             len(m.CheckIns) >= historyMinimum,
		PreferredActivityTypes: preferred,
		AvoidActivityTypes:     avoid,
		HasActivityFeedback:    len(m.HelpfulActivities) >= feedbackMinimum,
	}
}

// Streak counts distinct local check-in days, newest first, that line up
// with today, yesterday and so on. It is zero unless the newest day is today
// or yesterday, and a run that ends yesterday never lines up with today.
func Streak(checkIns []model.CheckIn, now time.Time) int {
	if len(checkIns) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(checkIns))
	var days []time.Time
	for _, c := range checkIns {
		local := c.Date.In(now.Location())
		key := clock.DateKey(local)
		if seen[key] {
			continue
		}
		seen[key] = true
		days = append(days, clock.StartOfDay(local))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	newest := clock.DateKey(days[0])
	if newest != clock.DateKey(now) && newest != clock.DateKey(clock.DaysAgo(now, 1)) {
		return 0
	}

	streak := 0
	for i, d := range days {
		if clock.DateKey(d) != clock.DateKey(clock.DaysAgo(now, i)) {
			break
		}
		streak++
	}
	return streak
}

// Trend compares the mean mood score of the last seven check-ins against
// the seven before them.
func Trend(checkIns []model.CheckIn) string {
	n := len(checkIns)
	recent := checkIns[max(0, n-trendWindow):]
	previous := checkIns[max(0, n-2*trendWindow):max(0, n-trendWindow)]
	if len(recent) < trendMinimum || len(previous) < trendMinimum {
		return model.TrendStable
	}

	r, p := meanScore(recent), meanScore(previous)
	switch {
	case r > p+trendThreshold:
		return model.TrendImproving
	case r < p-trendThreshold:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

func meanScore(checkIns []model.CheckIn) float64 {
	var sum float64
	for _, c := range checkIns {
		s, ok := moodScores[c.Mood]
		if !ok {
			s = 3
		}
		sum += s
	}
	return sum / float64(len(checkIns))
}

// ActivityPreferences groups feedback by type. Types with at least two
// ratings are preferred at a helpful ratio of 0.7 or more and avoided at 0.3
// or less. Both lists are sorted.
func ActivityPreferences(feedback []model.ActivityFeedback) (preferred, avoid []string) {
	type tally struct{ helpful, total int }
	stats := map[string]*tally{}
	for _, f := range feedback {
		t, ok := stats[f.Type]
		if !ok {
			t = &tally{}
			stats[f.Type] = t
		}
		t.total++
		if f.Helpful {
			t.helpful++
		}
	}

	preferred, avoid = []string{}, []string{}
	for typ, t := range stats {
		if t.total < preferenceMinRatings {
			continue
		}
		ratio := float64(t.helpful) / float64(t.total)
		switch {
		case ratio >= preferredRatio:
			preferred = append(preferred, typ)
		case ratio <= avoidRatio:
			avoid = append(avoid, typ)
		}
	}
	sort.Strings(preferred)
	sort.Strings(avoid)
	return preferred, avoid
}

// mostCommon returns the key with the highest count; ties go to the
// lexically smallest key.
func mostCommon(counts map[string]int) string {
	best, bestN := "", 0
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best
}
