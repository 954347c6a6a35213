package store

import (
	"context"
	"os"
	"sort"
	"strings"
)

// Stats holds store statistics.
type Stats struct {
	DBPath      string           `json:"db_path,omitempty"`
	DBSizeBytes int64            `json:"db_size_bytes,omitempty"`
	TotalKeys   int              `json:"total_keys"`
	Namespaces  []NamespaceStats `json:"namespaces"`
}

// NamespaceStats holds per-namespace counts. A key's namespace is the part
// before its first ':' (or the whole key).
type NamespaceStats struct {
	NS         string `json:"ns"`
	Keys       int    `json:"keys"`
	ValueBytes int    `json:"value_bytes"`
}

// Namespace returns the namespace part of key.
func Namespace(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

// CollectStats gathers statistics for any Store.
func CollectStats(ctx context.Context, s Store) (*Stats, error) {
	st := &Stats{}
	if sq, ok := s.(*SQLiteStore); ok {
		st.DBPath = sq.Path()
		if info, err := os.Stat(sq.Path()); err == nil {
			st.DBSizeBytes = info.Size()
		}
	}

	keys, err := s.Keys(ctx, "")
	if err != nil {
		return st, err
	}
	st.TotalKeys = len(keys)

	byNS := map[string]*NamespaceStats{}
	for _, k := range keys {
		ns := Namespace(k)
		n, ok := byNS[ns]
		if !ok {
			n = &NamespaceStats{NS: ns}
			byNS[ns] = n
		}
		n.Keys++
		if v, err := s.Get(ctx, k); err == nil {
			n.ValueBytes += len(v)
		}
	}

	for _, n := range byNS {
		st.Namespaces = append(st.Namespaces, *n)
	}
	sort.Slice(st.Namespaces, func(i, j int) bool {
		if st.Namespaces[i].Keys != st.Namespaces[j].Keys {
			return st.Namespaces[i].Keys > st.Namespaces[j].Keys
		}
		return st.Namespaces[i].NS < st.Namespaces[j].NS
	})
	return st, nil
}
