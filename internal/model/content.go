package model

// ContentType is the variant tag of a ContentItem.
type ContentType string

const (
	TypeMedia     ContentType = "media"
	TypeBreathing ContentType = "breathing"
	TypeMicro     ContentType = "micro"
	TypeJournal   ContentType = "journal"
	TypeRecipe    ContentType = "recipe"
	TypeInfo      ContentType = "info"
)

// ContentItem is any recommendable unit. Exactly one variant payload is set,
// matching Type.
type ContentItem struct {
	ID            string      `json:"id" yaml:"id"`
	Type          ContentType `json:"type" yaml:"type,omitempty"`
	Category      string      `json:"category,omitempty" yaml:"category,omitempty"`
	Title         string      `json:"title" yaml:"title"`
	Subtitle      string      `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Signal        Signal      `json:"signal,omitempty" yaml:"signal,omitempty"`
	RelevanceBase int         `json:"relevance_base" yaml:"relevance_base"`

	// Set by the recommendation selector.
	Reason Signal `json:"reason,omitempty" yaml:"-"`
	Score  int    `json:"score,omitempty" yaml:"-"`
	Live   bool   `json:"live,omitempty" yaml:"-"`

	Media     *Media     `json:"media,omitempty" yaml:"media,omitempty"`
	Breathing *Breathing `json:"breathing,omitempty" yaml:"breathing,omitempty"`
	Micro     *Micro     `json:"micro,omitempty" yaml:"micro,omitempty"`
	Journal   *Journal   `json:"journal,omitempty" yaml:"journal,omitempty"`
	Recipe    *Recipe    `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	Info      *Info      `json:"info,omitempty" yaml:"info,omitempty"`
}

// Media is an audio or video reference on an external platform.
type Media struct {
	Platform        string `json:"platform" yaml:"platform"`
	ExternalID      string `json:"external_id" yaml:"external_id"`
	Channel         string `json:"channel,omitempty" yaml:"channel,omitempty"`
	Thumbnail       string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Duration        string `json:"duration,omitempty" yaml:"duration,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
}

// Breathing is a four-phase breathing pattern, in seconds per phase.
type Breathing struct {
	Inhale          int `json:"inhale" yaml:"inhale"`
	HoldIn          int `json:"hold_in" yaml:"hold_in"`
	Exhale          int `json:"exhale" yaml:"exhale"`
	HoldOut         int `json:"hold_out" yaml:"hold_out"`
	DurationSeconds int `json:"duration_seconds" yaml:"duration_seconds"`
}

// Cycle returns the length of one full breath in seconds.
func (b Breathing) Cycle() int {
	return b.Inhale + b.HoldIn + b.Exhale + b.HoldOut
}

// Micro is a short physical or mental action.
type Micro struct {
	Instruction string `json:"instruction" yaml:"instruction"`
	Duration    string `json:"duration" yaml:"duration"`
}

// Journal is a writing prompt.
type Journal struct {
	Prompt string `json:"prompt" yaml:"prompt"`
}

// Recipe is a short food or drink recipe.
type Recipe struct {
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
	Steps       []string `json:"steps" yaml:"steps"`
}

// Info is an explanatory card.
type Info struct {
	Content string `json:"content" yaml:"content"`
}
