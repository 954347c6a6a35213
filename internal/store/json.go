package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Load decodes the JSON value at key into a fresh T. A missing key, a backend
// failure or malformed JSON all yield def() instead of an error.
func Load[T any](ctx context.Context, s Store, key string, def func() T) T {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("store read failed, using defaults")
		}
		return def()
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("malformed stored value, using defaults")
		return def()
	}
	return v
}

// Save encodes v as JSON and writes it to key.
func Save(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// SaveBestEffort is Save with the error logged and dropped. It reports whether
// the write succeeded.
func SaveBestEffort(ctx context.Context, s Store, key string, v any) bool {
	if err := Save(ctx, s, key, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("store write failed")
		return false
	}
	return true
}
