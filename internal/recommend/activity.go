package recommend

import (
	"slices"

	"github.com/rcliao/rooted/internal/random"
)

// Activity types suggested alongside a recommendation set.
const (
	ActivityBreathing  = "breathing"
	ActivityMeditation = "meditation"
	ActivityYoga       = "yoga"
	ActivityMovement   = "movement"
)

// PreferredChance is the probability of choosing among preferred types
// when any are available.
const PreferredChance = 0.7

// ActivityPrefs are learned activity-type preferences.
type ActivityPrefs struct {
	Preferred []string
	Avoid     []string
}

// SelectActivityType picks an activity type for a check-in. Mood may be a
// catalog mood or a check-in mood such as "great". Avoided types are dropped
// unless that would leave nothing.
func SelectActivityType(rng *random.Source, mood, energy string, goals []string, prefs ActivityPrefs) string {
	var options []string
	switch {
	case mood == "stressed" || slices.Contains(goals, "stress") || slices.Contains(goals, "calm"):
		if energy == "low" {
			options = []string{ActivityBreathing, ActivityMeditation}
		} else {
			options = []string{ActivityMeditation, ActivityBreathing}
		}
	case slices.Contains(goals, "movement") && energy != "low":
		if mood == "great" {
			options = []string{ActivityMovement, ActivityYoga}
		} else {
			options = []string{ActivityYoga, ActivityMovement}
		}
	case energy == "low":
		options = []string{ActivityBreathing, ActivityMeditation}
	case energy == "high":
		options = []string{ActivityYoga, ActivityMovement, ActivityMeditation}
	default:
		options = []string{ActivityMeditation, ActivityBreathing, ActivityYoga}
	}
	return prioritize(rng, options, prefs)
}

func prioritize(rng *random.Source, options []string, prefs ActivityPrefs) string {
	var filtered []string
	for _, o := range options {
		if !slices.Contains(prefs.Avoid, o) {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		filtered = options
	}

	var preferred []string
	for _, o := range filtered {
		if slices.Contains(prefs.Preferred, o) {
			preferred = append(preferred, o)
		}
	}
	if len(preferred) > 0 && rng.Float64() < PreferredChance {
		return random.Pick(rng, preferred)
	}
	return random.Pick(rng, filtered)
}
