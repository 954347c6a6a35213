package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/rooted/internal/model"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		mood    model.Mood
		signals []model.Signal
	}{
		{"empty", "", model.MoodNeutral, nil},
		{"whitespace", "   \n\t", model.MoodNeutral, nil},
		{"no keywords", "the sky is a colour", model.MoodNeutral, nil},
		{"sleep and work", "I can't sleep, work is overwhelming", model.MoodNeutral, []model.Signal{model.SignalSleep, model.SignalWork}},
		{"stressed with panic", "I'm so stressed, my heart racing", model.MoodStressed, []model.Signal{model.SignalPanic}},
		{"sad wins over stressed", "sad and stressed", model.MoodSad, nil},
		{"case insensitive", "TIRED of my BOSS", model.MoodTired, []model.Signal{model.SignalWork}},
		{"curly apostrophe", "I can’t breathe", model.MoodNeutral, []model.Signal{model.SignalPanic}},
		{"happy", "feeling great after the gym", model.MoodHappy, []model.Signal{model.SignalBody}},
		{"stressed is not rest", "so stressed about it", model.MoodStressed, nil},
		{"need rest", "I need rest", model.MoodNeutral, []model.Signal{model.SignalSleep}},
		{"any rest", "I can't get any rest", model.MoodNeutral, []model.Signal{model.SignalSleep}},
		{"my ex", "my ex called again", model.MoodNeutral, []model.Signal{model.SignalBreakup}},
		{"ex inside words", "see the next text", model.MoodNeutral, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mood, signals := Extract(tt.text)
			assert.Equal(t, tt.mood, mood)
			assert.Equal(t, tt.signals, signals)
		})
	}
}

func TestPrimary(t *testing.T) {
	_, signals := Extract("lonely at work with a headache")
	assert.Equal(t, model.SignalLonely, Primary(signals))
	assert.Equal(t, model.Signal(""), Primary(nil))
}

func TestDetectEmotion(t *testing.T) {
	assert.Equal(t, "stressed", DetectEmotion("Too much going on"))
	assert.Equal(t, "tired", DetectEmotion("totally drained"))
	assert.Equal(t, "anxious", DetectEmotion("I feel nervous"))
	assert.Equal(t, "neutral", DetectEmotion(""))
	assert.Equal(t, "neutral", DetectEmotion("just checking in"))
}
