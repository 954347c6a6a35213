package model

import "time"

// CheckIn is a single mood/energy report.
type CheckIn struct {
	Date      time.Time `json:"date"`
	Mood      string    `json:"mood"`
	Energy    string    `json:"energy"`
	TimeOfDay string    `json:"time_of_day"`
}

// ConversationRecord is a truncated free-text message and its detected emotion.
type ConversationRecord struct {
	Date            time.Time `json:"date"`
	UserMessage     string    `json:"user_message"`
	DetectedEmotion string    `json:"detected_emotion,omitempty"`
}

// ActivityFeedback records whether an activity helped.
type ActivityFeedback struct {
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Helpful bool      `json:"helpful"`
	Date    time.Time `json:"date"`
}

// Mood trend values.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// Insights is derived from the memory logs on demand and never stored.
type Insights struct {
	TotalCheckIns          int      `json:"total_check_ins"`
	StreakDays             int      `json:"streak_days"`
	MostCommonMood         string   `json:"most_common_mood,omitempty"`
	MostCommonEnergy       string   `json:"most_common_energy,omitempty"`
	MostCommonEmotion      string   `json:"most_common_emotion,omitempty"`
	PreferredTime          string   `json:"preferred_time,omitempty"`
	MoodTrend              string   `json:"mood_trend"`
	HasHistory             bool     `json:"has_history"`
	PreferredActivityTypes []string `json:"preferred_activity_types"`
	AvoidActivityTypes     []string `json:"avoid_activity_types"`
	HasActivityFeedback    bool     `json:"has_activity_feedback"`
}
