package model

import (
	"fmt"
	"time"
)

// CompletionMethod says how a completion was detected.
type CompletionMethod string

const (
	// MethodVerified is backed by an objective signal such as an elapsed timer.
	MethodVerified CompletionMethod = "verified"
	// MethodEstimated is inferred, e.g. a manual "done" before the threshold.
	MethodEstimated CompletionMethod = "estimated"
)

// ValidMethods are the allowed completion methods.
var ValidMethods = map[CompletionMethod]bool{
	MethodVerified:  true,
	MethodEstimated: true,
}

// ParseCompletionMethod returns the method named s, or an error for anything
// other than verified or estimated.
func ParseCompletionMethod(s string) (CompletionMethod, error) {
	m := CompletionMethod(s)
	if !ValidMethods[m] {
		return "", fmt.Errorf("unknown completion method %q (want verified or estimated)", s)
	}
	return m, nil
}

// TrackingSession is an in-progress engagement with a content item.
type TrackingSession struct {
	StartTime time.Time `json:"start_time"`
	Type      string    `json:"type"`
	Title     string    `json:"title,omitempty"`
}

// CompletionEvent is an append-only record of finished content.
type CompletionEvent struct {
	ID              string           `json:"id"`
	ItemID          string           `json:"item_id"`
	Type            string           `json:"type"`
	Method          CompletionMethod `json:"method"`
	Title           string           `json:"title,omitempty"`
	DurationSeconds int              `json:"duration_seconds"`
	Timestamp       time.Time        `json:"timestamp"`
	DateKey         string           `json:"date"`
}

// DailyStat aggregates one calendar day of engagement.
type DailyStat struct {
	Verified  int `json:"verified"`
	Estimated int `json:"estimated"`
	Minutes   int `json:"minutes"`
}

// Counts reports whether the day qualifies for the engagement streak:
// one verified completion, or two estimated ones.
func (d DailyStat) Counts() bool {
	return d.Verified >= 1 || d.Estimated >= 2
}

// RecentActivity is a display entry for the recent-activity log.
type RecentActivity struct {
	ID        string           `json:"id"`
	ItemID    string           `json:"item_id"`
	Type      string           `json:"type"`
	Method    CompletionMethod `json:"method"`
	Title     string           `json:"title,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
