// Package catalog holds the static content catalog and the live-search
// query tables, embedded from catalog.yaml.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/rooted/internal/model"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Partition is the content available for one mood.
type Partition struct {
	Media         []model.ContentItem `yaml:"media"`
	MediaFallback []model.ContentItem `yaml:"media_fallback"`
	Breathing     []model.ContentItem `yaml:"breathing"`
	Micro         []model.ContentItem `yaml:"micro"`
	Journal       []model.ContentItem `yaml:"journal"`
	Recipe        []model.ContentItem `yaml:"recipe"`
	Info          []model.ContentItem `yaml:"info"`
}

// Empty reports whether the partition has no recommendable items.
func (p *Partition) Empty() bool {
	return p == nil || len(p.Media)+len(p.Breathing)+len(p.Micro)+len(p.Journal)+len(p.Recipe)+len(p.Info) == 0
}

// LiveCategory is one weighted live-search category for a mood.
type LiveCategory struct {
	Category string   `yaml:"category"`
	Weight   float64  `yaml:"weight"`
	Queries  []string `yaml:"queries"`
}

// DurationRange bounds acceptable runtimes in seconds, inclusive.
type DurationRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Contains reports whether secs falls inside the range.
func (r DurationRange) Contains(secs int) bool {
	return secs >= r.Min && secs <= r.Max
}

// DefaultDuration applies to categories with no configured range.
var DefaultDuration = DurationRange{Min: 300, Max: 1200}

// Catalog is the full, versioned content catalog.
type Catalog struct {
	Version int                       `yaml:"version"`
	Moods   map[model.Mood]*Partition `yaml:"moods"`
	Live    struct {
		Durations map[string]DurationRange      `yaml:"durations"`
		Moods     map[model.Mood][]LiveCategory `yaml:"moods"`
	} `yaml:"live"`
}

// Parse decodes catalog YAML and stamps each item with the type implied by
// the list it appears in.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for mood, p := range c.Moods {
		if p == nil {
			continue
		}
		stamp(p.Media, model.TypeMedia)
		stamp(p.MediaFallback, model.TypeMedia)
		stamp(p.Breathing, model.TypeBreathing)
		stamp(p.Micro, model.TypeMicro)
		stamp(p.Journal, model.TypeJournal)
		stamp(p.Recipe, model.TypeRecipe)
		stamp(p.Info, model.TypeInfo)
		if err := checkUnique(p); err != nil {
			return nil, fmt.Errorf("mood %s: %w", mood, err)
		}
	}
	return &c, nil
}

func stamp(items []model.ContentItem, t model.ContentType) {
	for i := range items {
		items[i].Type = t
	}
}

func checkUnique(p *Partition) error {
	seen := map[string]bool{}
	for _, list := range [][]model.ContentItem{p.Media, p.MediaFallback, p.Breathing, p.Micro, p.Journal, p.Recipe, p.Info} {
		for _, it := range list {
			if it.ID == "" {
				return fmt.Errorf("item %q has no id", it.Title)
			}
			if seen[it.ID] {
				return fmt.Errorf("duplicate id %q", it.ID)
			}
			seen[it.ID] = true
		}
	}
	return nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog. It panics if the embedded data is
// invalid, which the package tests guard against.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(catalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCat = c
	})
	return defaultCat
}

// Partition returns the content for mood, falling back to neutral for
// unknown moods. The result may be nil if neither exists.
func (c *Catalog) Partition(mood model.Mood) *Partition {
	if p, ok := c.Moods[mood]; ok && !p.Empty() {
		return p
	}
	return c.Moods[model.MoodNeutral]
}

// Fallback returns the static media fallback list for mood, or neutral's.
func (c *Catalog) Fallback(mood model.Mood) []model.ContentItem {
	if p, ok := c.Moods[mood]; ok && p != nil && len(p.MediaFallback) > 0 {
		return p.MediaFallback
	}
	if p := c.Moods[model.MoodNeutral]; p != nil {
		return p.MediaFallback
	}
	return nil
}

// LiveCategories returns the weighted live categories for mood, or neutral's.
func (c *Catalog) LiveCategories(mood model.Mood) []LiveCategory {
	if cats, ok := c.Live.Moods[mood]; ok && len(cats) > 0 {
		return cats
	}
	return c.Live.Moods[model.MoodNeutral]
}

// Duration returns the runtime range for a live category.
func (c *Catalog) Duration(category string) DurationRange {
	if r, ok := c.Live.Durations[category]; ok {
		return r
	}
	return DefaultDuration
}
