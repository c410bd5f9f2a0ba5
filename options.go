package intl

import (
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/intl/pkg/format"
	"github.com/dmitrymomot/intl/pkg/loader"
	"github.com/dmitrymomot/intl/pkg/plural"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

type instanceConfig struct {
	locale          string
	defaultLocale   string
	fallbackLocale  []string
	messages        map[string]map[string]any
	datetimeFormats map[string]map[string]any
	numberFormats   map[string]map[string]any
	rules           *plural.Registry
	missingKey      MissingKeyFunc
	missingHandler  MissingHandler
	formatProvider  *format.Format
	logger          *slog.Logger
	legacy          bool
}

// Option configures an Instance during construction.
type Option func(*instanceConfig) error

// WithLocale sets the global composer's initial locale. Defaults to "en".
func WithLocale(locale string) Option {
	return func(c *instanceConfig) error {
		if locale == "" {
			return ErrEmptyLocale
		}
		c.locale = locale
		return nil
	}
}

// WithFallbackLocale sets the global composer's fallback locale list, tried
// in order after the active locale during key resolution.
func WithFallbackLocale(locales ...string) Option {
	return func(c *instanceConfig) error {
		c.fallbackLocale = locales
		return nil
	}
}

// WithDefaultLocale sets the locale appended to the end of every fallback
// chain. Defaults to "en"; pass an empty string to disable.
func WithDefaultLocale(locale string) Option {
	return func(c *instanceConfig) error {
		c.defaultLocale = locale
		return nil
	}
}

// WithMessages seeds the global composer's message trees. Keys may use
// nested maps or flat dotted paths; both end up in the same nested form.
func WithMessages(messages map[string]map[string]any) Option {
	return func(c *instanceConfig) error {
		c.messages = mergeResourceMaps(c.messages, messages)
		return nil
	}
}

// WithDatetimeFormats seeds the global composer's datetime format trees.
// Entries are Go time layouts keyed by format name.
func WithDatetimeFormats(formats map[string]map[string]any) Option {
	return func(c *instanceConfig) error {
		c.datetimeFormats = mergeResourceMaps(c.datetimeFormats, formats)
		return nil
	}
}

// WithNumberFormats seeds the global composer's number format trees.
func WithNumberFormats(formats map[string]map[string]any) Option {
	return func(c *instanceConfig) error {
		c.numberFormats = mergeResourceMaps(c.numberFormats, formats)
		return nil
	}
}

// WithJSONMessages loads message trees from .json files in fsys.
// File convention: {locale}.json or {locale}/{namespace}.json.
func WithJSONMessages(fsys fs.FS) Option {
	return func(c *instanceConfig) error {
		loaded, err := loader.JSON(fsys)
		if err != nil {
			return err
		}
		c.messages = mergeResourceMaps(c.messages, loaded)
		return nil
	}
}

// WithYAMLMessages loads message trees from .yaml/.yml files in fsys.
// File convention: {locale}.yaml or {locale}/{namespace}.yaml.
func WithYAMLMessages(fsys fs.FS) Option {
	return func(c *instanceConfig) error {
		loaded, err := loader.YAML(fsys)
		if err != nil {
			return err
		}
		c.messages = mergeResourceMaps(c.messages, loaded)
		return nil
	}
}

// WithPluralRules registers custom plural rules on the global composer.
func WithPluralRules(rules map[string]plural.Rule) Option {
	return func(c *instanceConfig) error {
		if c.rules == nil {
			c.rules = plural.NewRegistry()
		}
		c.rules.RegisterAll(rules)
		return nil
	}
}

// WithMissingKeyHandler sets a diagnostic handler called for every key that
// resolves nowhere in the fallback chain.
func WithMissingKeyHandler(handler MissingHandler) Option {
	return func(c *instanceConfig) error {
		c.missingHandler = handler
		return nil
	}
}

// WithMissingKeyFunc overrides the text rendered for unresolved keys.
// The default returns the key itself.
func WithMissingKeyFunc(fn MissingKeyFunc) Option {
	return func(c *instanceConfig) error {
		c.missingKey = fn
		return nil
	}
}

// WithFormatProvider sets the base format provider used by D and N when a
// format entry does not override it.
func WithFormatProvider(f *format.Format) Option {
	return func(c *instanceConfig) error {
		if f != nil {
			c.formatProvider = f
		}
		return nil
	}
}

// WithLogger sets the diagnostics logger. If unset, warnings are dropped.
func WithLogger(logger *slog.Logger) Option {
	return func(c *instanceConfig) error {
		c.logger = logger
		return nil
	}
}

// WithLegacyMode restricts the instance to the global composer: requesting
// local or parent scope through Use fails with ErrNotAvailableInLegacyMode.
func WithLegacyMode() Option {
	return func(c *instanceConfig) error {
		c.legacy = true
		return nil
	}
}

func mergeResourceMaps(dst, src map[string]map[string]any) map[string]map[string]any {
	if dst == nil {
		dst = make(map[string]map[string]any, len(src))
	}
	for locale, tree := range src {
		if dst[locale] == nil {
			dst[locale] = make(map[string]any, len(tree))
		}
		for key, value := range tree {
			dst[locale][key] = value
		}
	}
	return dst
}
