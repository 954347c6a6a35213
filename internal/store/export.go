package store

import (
	"context"
	"fmt"
)

// Entry is one exported key-value pair.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ExportAll returns every entry, optionally filtered by key prefix.
func ExportAll(ctx context.Context, s Store, prefix string) ([]Entry, error) {
	keys, err := s.Keys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		v, err := s.Get(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", k, err)
		}
		entries = append(entries, Entry{Key: k, Value: v})
	}
	return entries, nil
}

// Import writes entries from an export, replacing existing keys.
func Import(ctx context.Context, s Store, entries []Entry) (int, error) {
	imported := 0
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		if err := s.Set(ctx, e.Key, e.Value); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
