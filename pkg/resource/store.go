package resource

import "sync"

// Store holds per-locale resource trees for one composer scope. Reads and
// merges are guarded so a merge is applied as one atomic step: no resolve
// running after a merge returns can observe a partially merged tree.
type Store struct {
	locales map[string]Tree
	mu      sync.RWMutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{locales: make(map[string]Tree)}
}

// NewStoreWith creates a store seeded with per-locale trees. Input maps are
// normalized, so dotted and nested insertion styles are equivalent.
func NewStoreWith(data map[string]map[string]any) *Store {
	s := NewStore()
	for locale, tree := range data {
		s.Set(locale, tree)
	}
	return s
}

// Get returns a deep copy of the locale's tree, or nil when the locale has
// no resources. The copy keeps callers from mutating store state in place.
func (s *Store) Get(locale string) Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.locales[locale]
	if !ok {
		return nil
	}
	return Clone(t)
}

// Set replaces the locale's whole tree.
func (s *Store) Set(locale string, data map[string]any) {
	normalized := Normalize(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.locales[locale] = normalized
}

// Merge deep-merges partial into the locale's tree, creating it if absent.
// Leaf conflicts resolve last-write-wins; nested objects union their keys.
func (s *Store) Merge(locale string, partial map[string]any) {
	normalized := Normalize(partial)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.locales[locale]
	if !ok {
		s.locales[locale] = normalized
		return
	}
	s.locales[locale] = DeepMerge(existing, normalized)
}

// Lookup resolves a dotted key in the locale's tree.
func (s *Store) Lookup(locale, key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.locales[locale]
	if !ok {
		return nil, false
	}
	return Lookup(t, key)
}

// Locales returns the locales currently present in the store.
func (s *Store) Locales() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.locales))
	for locale := range s.locales {
		out = append(out, locale)
	}
	return out
}

// MergeAll merges every locale tree from src into this store. Used when a
// scoped composer contributes its initial resources to the global scope.
func (s *Store) MergeAll(src *Store) {
	if src == nil || src == s {
		return
	}

	src.mu.RLock()
	snapshot := make(map[string]Tree, len(src.locales))
	for locale, t := range src.locales {
		snapshot[locale] = Clone(t)
	}
	src.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	for locale, t := range snapshot {
		existing, ok := s.locales[locale]
		if !ok {
			s.locales[locale] = t
			continue
		}
		s.locales[locale] = DeepMerge(existing, t)
	}
}
