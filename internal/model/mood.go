// Package model defines the core wellness data types.
package model

// Mood is the emotional category that drives catalog selection.
type Mood string

const (
	MoodStressed    Mood = "stressed"
	MoodSad         Mood = "sad"
	MoodTired       Mood = "tired"
	MoodAngry       Mood = "angry"
	MoodHappy       Mood = "happy"
	MoodNeutral     Mood = "neutral"
	MoodAnxious     Mood = "anxious"
	MoodUnfocused   Mood = "unfocused"
	MoodLowEnergy   Mood = "lowEnergy"
	MoodOverwhelmed Mood = "overwhelmed"
)

// Moods lists every known mood in display order.
var Moods = []Mood{
	MoodHappy, MoodSad, MoodStressed, MoodAnxious, MoodTired,
	MoodAngry, MoodUnfocused, MoodLowEnergy, MoodOverwhelmed, MoodNeutral,
}

// ValidMoods are the allowed mood values.
var ValidMoods = map[Mood]bool{}

func init() {
	for _, m := range Moods {
		ValidMoods[m] = true
	}
}

// Signal is a contextual tag inferred from free text.
type Signal string

const (
	SignalSleep      Signal = "sleep"
	SignalLonely     Signal = "lonely"
	SignalWork       Signal = "work"
	SignalPanic      Signal = "panic"
	SignalMotivation Signal = "motivation"
	SignalFocus      Signal = "focus"
	SignalBreakup    Signal = "breakup"
	SignalSocial     Signal = "social"
	SignalBody       Signal = "body"
	SignalHeadache   Signal = "headache"
)

// ContainsSignal reports whether s is present in signals.
func ContainsSignal(signals []Signal, s Signal) bool {
	if s == "" {
		return false
	}
	for _, x := range signals {
		if x == s {
			return true
		}
	}
	return false
}
