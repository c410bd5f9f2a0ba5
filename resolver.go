package intl

import "github.com/dmitrymomot/intl/pkg/resource"

// resolveRaw walks the fallback chain and returns the first leaf message
// found for key, together with the locale that supplied it. Subtree nodes
// are not hits for translation purposes. When the composer allows root
// fallback, the global composer's messages are consulted after the local
// store misses across the whole chain.
func (c *Composer) resolveRaw(key, override string) (raw any, foundLocale string, ok bool) {
	chain := c.chain(override)

	if raw, foundLocale, ok = lookupChain(c.messages, chain, key); ok {
		return raw, foundLocale, true
	}

	if c.fallbackRoot && c.inst.global != nil && c != c.inst.global {
		if raw, foundLocale, ok = lookupChain(c.inst.global.messages, chain, key); ok {
			return raw, foundLocale, true
		}
	}

	return nil, "", false
}

func lookupChain(store *resource.Store, chain []string, key string) (any, string, bool) {
	for _, loc := range chain {
		value, ok := store.Lookup(loc, key)
		if !ok || !resource.IsLeaf(value) {
			continue
		}
		return value, loc, true
	}
	return nil, "", false
}
