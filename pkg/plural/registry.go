package plural

import "sync"

// Registry maps locales to plural rules for one composer scope. Lookups for
// locales without an explicit rule fall back to the language-family rule from
// ForLocale, so a registry is useful even when empty.
type Registry struct {
	rules map[string]Rule
	mu    sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Get returns the rule for a locale. Explicit registrations win; otherwise
// the base-language family rule applies.
func (r *Registry) Get(locale string) Rule {
	r.mu.RLock()
	rule, ok := r.rules[locale]
	r.mu.RUnlock()

	if ok {
		return rule
	}
	return ForLocale(locale)
}

// Register installs a custom rule for a locale, replacing any previous one.
// A nil rule is ignored.
func (r *Registry) Register(locale string, rule Rule) {
	if locale == "" || rule == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[locale] = rule
}

// RegisterAll installs rules for multiple locales at once.
func (r *Registry) RegisterAll(rules map[string]Rule) {
	for locale, rule := range rules {
		r.Register(locale, rule)
	}
}

// Clone returns an independent copy of the registry. A scoped composer
// clones its ancestor's registry so local overrides never leak upward.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := NewRegistry()
	for locale, rule := range r.rules {
		out.rules[locale] = rule
	}
	return out
}
