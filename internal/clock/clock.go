// Package clock provides an injectable wall clock and local calendar helpers.
package clock

import "time"

// DateLayout is the calendar-day key format.
const DateLayout = "2006-01-02"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Real is the system clock in the local timezone.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fixed always returns T. Tests move it forward with Advance or Set.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time { return f.T }

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.T = f.T.Add(d) }

// Set jumps the clock to t.
func (f *Fixed) Set(t time.Time) { f.T = t }

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysAgo returns midnight n calendar days before t. It walks the calendar
// rather than subtracting 24h so DST transitions don't skip or repeat a day.
func DaysAgo(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, -n)
}

// DateKey formats t's calendar day.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// TimeOfDay buckets t into morning (<12), afternoon (12-17) or evening (>=17).
func TimeOfDay(t time.Time) string {
	h := t.Hour()
	switch {
	case h >= 17:
		return "evening"
	case h >= 12:
		return "afternoon"
	default:
		return "morning"
	}
}
