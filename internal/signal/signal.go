// Package signal maps free text to a mood and contextual signal tags using
// ordered keyword tables. It does no I/O.
package signal

import (
	"strings"

	"github.com/rcliao/rooted/internal/model"
)

type moodKeywords struct {
	mood     model.Mood
	keywords []string
}

type signalKeywords struct {
	signal   model.Signal
	keywords []string
}

// Earlier entries win.
var moodTable = []moodKeywords{
	{model.MoodSad, []string{"sad", "down", "depressed", "unhappy", "lonely", "hopeless", "crying", "tears", "miserable", "heartbroken", "grief", "blue", "low", "upset", "hurt", "broken"}},
	{model.MoodStressed, []string{"stressed", "anxious", "anxiety", "overwhelmed", "worried", "panic", "nervous", "tense", "pressure", "frantic", "scared", "afraid", "freaking"}},
	{model.MoodTired, []string{"tired", "exhausted", "drained", "sleepy", "fatigued", "worn out", "low energy", "sluggish", "burnt out", "weary", "drowsy"}},
	{model.MoodAngry, []string{"angry", "frustrated", "annoyed", "irritated", "mad", "furious", "pissed", "rage", "hate", "fed up"}},
	{model.MoodHappy, []string{"happy", "great", "wonderful", "amazing", "fantastic", "joyful", "blessed", "grateful", "good", "positive", "excited", "awesome", "love", "calm", "peaceful", "relaxed", "content", "fine", "okay", "energized", "motivated"}},
}

// Order defines which signal is primary when several match.
var signalTable = []signalKeywords{
	{model.SignalSleep, []string{"sleep", "insomnia", "cant sleep", "can't sleep", "sleeping", "bed", "need rest", "some rest", "any rest", "get rest", "nightmare", "woke up"}},
	{model.SignalLonely, []string{"lonely", "alone", "isolated", "no friends", "miss someone", "nobody", "by myself"}},
	{model.SignalWork, []string{"work", "job", "boss", "deadline", "meeting", "office", "career", "coworker", "project", "busy"}},
	{model.SignalPanic, []string{"panic", "panicking", "heart racing", "cant breathe", "can't breathe", "attack", "spiraling"}},
	{model.SignalMotivation, []string{"motivation", "unmotivated", "lazy", "procrastinating", "stuck", "cant start", "can't start"}},
	{model.SignalFocus, []string{"focus", "distracted", "concentrate", "attention", "scatter", "adhd", "mind wandering"}},
	{model.SignalBreakup, []string{"breakup", "broke up", "my ex", "relationship", "dumped", "divorce", "separated"}},
	{model.SignalSocial, []string{"social", "people", "party", "friends", "conversation", "awkward", "shy"}},
	{model.SignalBody, []string{"body", "weight", "eating", "food", "exercise", "gym", "appearance", "self-image"}},
	{model.SignalHeadache, []string{"headache", "head hurts", "migraine", "pain", "tension", "ache"}},
}

// Extract returns the detected mood and signals for text. Empty text yields
// neutral and no signals.
func Extract(text string) (model.Mood, []model.Signal) {
	return DetectMood(text), DetectSignals(text)
}

// DetectMood returns the first mood whose keywords appear in text, or neutral.
func DetectMood(text string) model.Mood {
	lower := normalize(text)
	if lower == "" {
		return model.MoodNeutral
	}
	for _, mk := range moodTable {
		if containsAny(lower, mk.keywords) {
			return mk.mood
		}
	}
	return model.MoodNeutral
}

// DetectSignals returns every signal with a keyword in text, in table order.
func DetectSignals(text string) []model.Signal {
	lower := normalize(text)
	if lower == "" {
		return nil
	}
	var found []model.Signal
	for _, sk := range signalTable {
		if containsAny(lower, sk.keywords) {
			found = append(found, sk.signal)
		}
	}
	return found
}

// Primary returns the first signal, or "".
func Primary(signals []model.Signal) model.Signal {
	if len(signals) == 0 {
		return ""
	}
	return signals[0]
}

var emotionTable = []struct {
	emotion  string
	keywords []string
}{
	{"stressed", []string{"stress", "overwhelm", "too much", "can't cope", "cant cope", "anxious", "worry", "panic"}},
	{"sad", []string{"sad", "down", "depressed", "hopeless", "lonely", "empty", "crying"}},
	{"tired", []string{"tired", "exhausted", "no energy", "drained", "burnt out", "fatigue"}},
	{"anxious", []string{"anxious", "nervous", "scared", "afraid", "worry", "uncertain"}},
	{"angry", []string{"angry", "frustrated", "annoyed", "irritated", "mad"}},
	{"happy", []string{"happy", "good", "great", "excited", "grateful", "joy"}},
}

// DetectEmotion labels a conversational message for the memory log.
func DetectEmotion(text string) string {
	lower := normalize(text)
	for _, e := range emotionTable {
		if containsAny(lower, e.keywords) {
			return e.emotion
		}
	}
	return "neutral"
}

func normalize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	// Curly apostrophes from phone keyboards.
	return strings.ReplaceAll(strings.ToLower(text), "’", "'")
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
