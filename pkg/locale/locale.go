// Package locale provides helpers for working with BCP-47-style locale
// identifiers: parent-chain derivation for region fallback and fallback
// chain construction for key resolution.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Base strips everything after the primary language subtag
// ("en-US" -> "en"). Returns the input unchanged if there is no subtag.
func Base(locale string) string {
	if i := strings.IndexByte(locale, '-'); i > 0 {
		return locale[:i]
	}
	return locale
}

// Parents returns the chain of progressively less specific locales implied
// by a BCP-47 tag, most specific first and excluding the tag itself:
// "de-DE-bavarian" -> ["de-DE", "de"]. Tags that do not parse fall back to
// splitting on "-" so opaque identifiers still degrade gracefully.
func Parents(locale string) []string {
	tag, err := language.Parse(locale)
	if err != nil {
		return rawParents(locale)
	}

	var out []string
	for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
		out = append(out, parent.String())
	}
	if len(out) == 0 {
		return rawParents(locale)
	}
	return out
}

func rawParents(locale string) []string {
	var out []string
	for {
		i := strings.LastIndexByte(locale, '-')
		if i <= 0 {
			return out
		}
		locale = locale[:i]
		out = append(out, locale)
	}
}

// Chain builds the ordered fallback chain used during key resolution: the
// active locale first, then its parents, then each explicit fallback locale
// with its parents, then the default locale. Duplicates are dropped while
// preserving first-seen order.
func Chain(active string, fallbacks []string, defaultLocale string) []string {
	seen := make(map[string]struct{}, len(fallbacks)+4)
	out := make([]string, 0, len(fallbacks)+4)

	add := func(locale string) {
		if locale == "" {
			return
		}
		if _, ok := seen[locale]; ok {
			return
		}
		seen[locale] = struct{}{}
		out = append(out, locale)
	}

	add(active)
	for _, parent := range Parents(active) {
		add(parent)
	}
	for _, fb := range fallbacks {
		add(fb)
		for _, parent := range Parents(fb) {
			add(parent)
		}
	}
	add(defaultLocale)

	return out
}
