package intl

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/intl/pkg/format"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/message"
	"github.com/dmitrymomot/intl/pkg/plural"
	"github.com/dmitrymomot/intl/pkg/resource"
)

// M is a shorthand for named interpolation arguments.
type M map[string]any

// MissingKeyFunc produces the text rendered when a key resolves nowhere in
// the fallback chain. The default returns the key itself.
type MissingKeyFunc func(locale, key string) string

// MissingHandler receives a diagnostic for every unresolved key.
type MissingHandler func(locale, key string)

const (
	stateActive int32 = iota
	stateDisposed
)

// Composer is a per-scope translation engine. It owns locale state, message
// and format resources, and the resolve/format pipeline behind T and Tc.
// Composers are created through an Instance, never directly.
type Composer struct {
	inst     *Instance
	id       string
	kind     Scope
	parentID string // ancestor lookup goes through the instance registry

	inheritLocale bool
	locale        *Value[string]
	fallback      *Value[[]string]

	messages        *resource.Store
	datetimeFormats *resource.Store
	numberFormats   *resource.Store
	rules           *plural.Registry

	// When set, resolution misses retry against the global composer's
	// resources before the missing-key policy applies.
	fallbackRoot bool

	missingKey     MissingKeyFunc
	missingHandler MissingHandler
	formatProvider *format.Format
	logger         *slog.Logger

	state atomic.Int32
}

func newComposer(inst *Instance, kind Scope, parentID string, cfg composerConfig) *Composer {
	c := &Composer{
		inst:            inst,
		id:              uuid.NewString(),
		kind:            kind,
		parentID:        parentID,
		inheritLocale:   cfg.inheritLocale,
		locale:          NewValue(cfg.locale),
		fallback:        NewValue(cfg.fallbackLocale),
		messages:        resource.NewStoreWith(cfg.messages),
		datetimeFormats: resource.NewStoreWith(cfg.datetimeFormats),
		numberFormats:   resource.NewStoreWith(cfg.numberFormats),
		rules:           cfg.rules,
		fallbackRoot:    cfg.fallbackRoot,
		missingKey:      cfg.missingKey,
		missingHandler:  cfg.missingHandler,
		formatProvider:  cfg.formatProvider,
		logger:          cfg.logger,
	}

	if c.rules == nil {
		c.rules = plural.NewRegistry()
	}
	if c.missingKey == nil {
		c.missingKey = func(_, key string) string { return key }
	}
	if c.formatProvider == nil {
		c.formatProvider = format.New()
	}

	emitDevtools(DevtoolsEvent{
		Name:       EventInit,
		InstanceID: inst.id,
		ScopeID:    c.id,
		Locale:     c.Locale(),
	})

	return c
}

type composerConfig struct {
	locale          string
	fallbackLocale  []string
	inheritLocale   bool
	fallbackRoot    bool
	messages        map[string]map[string]any
	datetimeFormats map[string]map[string]any
	numberFormats   map[string]map[string]any
	rules           *plural.Registry
	missingKey      MissingKeyFunc
	missingHandler  MissingHandler
	formatProvider  *format.Format
	logger          *slog.Logger
}

// ID returns the composer's scope identifier.
func (c *Composer) ID() string { return c.id }

// ScopeKind reports whether this composer is global or local.
func (c *Composer) ScopeKind() Scope { return c.kind }

// localeOwner resolves the composer whose locale state this composer reads.
// Inheriting local composers read through to their nearest ancestor; every
// other composer owns its locale.
func (c *Composer) localeOwner() *Composer {
	if !c.inheritLocale {
		return c
	}
	if parent := c.inst.lookupComposer(c.parentID); parent != nil {
		return parent.localeOwner()
	}
	return c.inst.global
}

// Locale returns the active locale. For inheriting local composers this is
// the resolved ancestor's current locale.
func (c *Composer) Locale() string {
	c.ensureActive()
	return c.localeOwner().locale.Get()
}

// SetLocale changes the active locale. The write is visible to the next T
// call; no resolved value survives a locale change. On composers that
// inherit their locale the write is rejected with a warning.
func (c *Composer) SetLocale(loc string) {
	c.ensureActive()
	if c.inheritLocale {
		c.warn("locale write ignored on inheriting composer", slog.String("locale", loc))
		return
	}
	c.locale.Set(loc)

	emitDevtools(DevtoolsEvent{
		Name:       EventLocaleChanged,
		InstanceID: c.inst.id,
		ScopeID:    c.id,
		Locale:     loc,
	})
}

// OnLocaleChange subscribes fn to locale writes on the owning composer.
func (c *Composer) OnLocaleChange(fn func(string)) (cancel func()) {
	c.ensureActive()
	return c.localeOwner().locale.Subscribe(fn)
}

// FallbackLocale returns the fallback locale list.
func (c *Composer) FallbackLocale() []string {
	c.ensureActive()
	return c.localeOwner().fallback.Get()
}

// SetFallbackLocale replaces the fallback locale list. Rejected with a
// warning on inheriting composers, like SetLocale.
func (c *Composer) SetFallbackLocale(locales ...string) {
	c.ensureActive()
	if c.inheritLocale {
		c.warn("fallback locale write ignored on inheriting composer")
		return
	}
	c.fallback.Set(locales)
}

// T resolves and formats the message for key. Arguments may mix named maps
// (M), positional values, and call options:
//
//	c.T("greeting", intl.M{"name": "Ada"})
//	c.T("slots", 1, 2)
//	c.T("maybe", intl.Default("n/a"))
//
// A key that resolves nowhere returns the missing-key policy text (the key
// itself by default) and emits a missing diagnostic; it never fails.
func (c *Composer) T(key string, args ...any) string {
	c.ensureActive()
	callArgs, opts := splitArgs(args)
	return c.translate(key, callArgs, opts)
}

// Tc resolves and formats the message for key with count threaded into the
// pluralization path.
func (c *Composer) Tc(key string, count int, args ...any) string {
	c.ensureActive()
	callArgs, opts := splitArgs(args)
	opts.count = &count
	return c.translate(key, callArgs, opts)
}

// Te reports whether key resolves to a message in the fallback chain.
func (c *Composer) Te(key string) bool {
	c.ensureActive()
	_, _, ok := c.resolveRaw(key, "")
	return ok
}

// Tm returns the whole resource subtree under key in the active locale, or
// nil when the key names nothing. Useful for iterating structured resources
// such as menus.
func (c *Composer) Tm(key string) resource.Tree {
	c.ensureActive()

	for _, loc := range c.chain("") {
		value, ok := c.messages.Lookup(loc, key)
		if !ok {
			continue
		}
		if tree, isTree := value.(resource.Tree); isTree {
			return resource.Clone(tree)
		}
	}
	return nil
}

func (c *Composer) translate(key string, args message.Args, opts callOpts) string {
	active := c.Locale()
	raw, foundLocale, ok := c.resolveRaw(key, opts.locale)
	if !ok {
		return c.missing(active, key, opts)
	}

	msg, err := c.compileLeaf(raw)
	if err != nil {
		// A malformed message is a resource authoring bug; fail loudly
		// instead of degrading like a missing key would.
		panic(fmt.Errorf("intl: rendering %q: %w", key, err))
	}

	var rendered string
	if opts.count != nil {
		rendered = msg.RenderPlural(*opts.count, c.rules.Get(foundLocale), args, c.logger)
	} else {
		rendered = msg.Render(args, c.logger)
	}

	emitDevtools(DevtoolsEvent{
		Name:       EventTranslate,
		InstanceID: c.inst.id,
		ScopeID:    c.id,
		Locale:     foundLocale,
		Key:        key,
		Result:     rendered,
	})

	return rendered
}

func (c *Composer) missing(activeLocale, key string, opts callOpts) string {
	if c.missingHandler != nil {
		c.missingHandler(activeLocale, key)
	}
	c.warn("missing translation key",
		slog.String("key", key),
		slog.String("locale", activeLocale))

	if opts.def != "" {
		return opts.def
	}
	return c.missingKey(activeLocale, key)
}

// compileLeaf turns a resolved leaf into a renderable message. Precompiled
// leaves pass through; raw strings go through the instance's compile cache.
func (c *Composer) compileLeaf(raw any) (*message.Message, error) {
	switch v := raw.(type) {
	case *message.Message:
		return v, nil
	case string:
		return c.inst.compile(v)
	default:
		return c.inst.compile(fmt.Sprintf("%v", v))
	}
}

// GetLocaleMessage returns a copy of this composer's message tree for the
// locale.
func (c *Composer) GetLocaleMessage(loc string) resource.Tree {
	c.ensureActive()
	return c.messages.Get(loc)
}

// SetLocaleMessage replaces this composer's message tree for the locale.
func (c *Composer) SetLocaleMessage(loc string, tree map[string]any) {
	c.ensureActive()
	c.messages.Set(loc, tree)
}

// MergeLocaleMessage deep-merges tree into this composer's messages for the
// locale. The merge is atomic with respect to concurrent T calls.
func (c *Composer) MergeLocaleMessage(loc string, tree map[string]any) {
	c.ensureActive()
	c.messages.Merge(loc, tree)
}

// GetDatetimeFormat returns a copy of the datetime format tree for the locale.
func (c *Composer) GetDatetimeFormat(loc string) resource.Tree {
	c.ensureActive()
	return c.datetimeFormats.Get(loc)
}

// SetDatetimeFormat replaces the datetime format tree for the locale.
func (c *Composer) SetDatetimeFormat(loc string, tree map[string]any) {
	c.ensureActive()
	c.datetimeFormats.Set(loc, tree)
}

// MergeDatetimeFormat deep-merges tree into the locale's datetime formats.
func (c *Composer) MergeDatetimeFormat(loc string, tree map[string]any) {
	c.ensureActive()
	c.datetimeFormats.Merge(loc, tree)
}

// GetNumberFormat returns a copy of the number format tree for the locale.
func (c *Composer) GetNumberFormat(loc string) resource.Tree {
	c.ensureActive()
	return c.numberFormats.Get(loc)
}

// SetNumberFormat replaces the number format tree for the locale.
func (c *Composer) SetNumberFormat(loc string, tree map[string]any) {
	c.ensureActive()
	c.numberFormats.Set(loc, tree)
}

// MergeNumberFormat deep-merges tree into the locale's number formats.
func (c *Composer) MergeNumberFormat(loc string, tree map[string]any) {
	c.ensureActive()
	c.numberFormats.Merge(loc, tree)
}

// RegisterPluralRule installs a custom plural rule for a locale, scoped to
// this composer only.
func (c *Composer) RegisterPluralRule(loc string, rule plural.Rule) {
	c.ensureActive()
	c.rules.Register(loc, rule)
}

// D formats t using the named datetime format entry for the active locale
// ("short", "long", ...). Entries are Go time layouts in the composer's
// datetime format resources; an unknown key falls back to the provider's
// default layout with a warning.
func (c *Composer) D(t time.Time, key string) string {
	c.ensureActive()

	for _, loc := range c.chain("") {
		value, ok := c.datetimeFormats.Lookup(loc, key)
		if !ok {
			continue
		}
		if layout, isString := value.(string); isString {
			return t.Format(layout)
		}
	}

	c.warn("unknown datetime format", slog.String("format", key))
	return c.formatProvider.DateTime(t)
}

// N formats v using the named number format entry for the active locale.
// The entry's style selects decimal, currency, or percent rendering; its
// remaining keys override the provider's separators and symbols. An unknown
// key falls back to plain decimal formatting with a warning.
func (c *Composer) N(v float64, key string) string {
	c.ensureActive()

	for _, loc := range c.chain("") {
		value, ok := c.numberFormats.Lookup(loc, key)
		if !ok {
			continue
		}
		entry, isTree := value.(resource.Tree)
		if !isTree {
			continue
		}

		f := format.FromEntry(entry, c.formatProvider)
		style, _ := entry["style"].(string)
		switch style {
		case format.StyleCurrency:
			return f.Currency(v)
		case format.StylePercent:
			return f.Percent(v)
		default:
			return f.Number(v)
		}
	}

	c.warn("unknown number format", slog.String("format", key))
	return c.formatProvider.Number(v)
}

// Disposed reports whether the composer's owning scope was torn down.
func (c *Composer) Disposed() bool {
	return c.state.Load() == stateDisposed
}

// dispose moves the composer to its terminal state. Idempotent.
func (c *Composer) dispose() {
	c.state.Store(stateDisposed)
}

func (c *Composer) ensureActive() {
	if c.state.Load() == stateDisposed {
		panic(fmt.Errorf("%w: scope %s", ErrComposerDisposed, c.id))
	}
}

func (c *Composer) warn(msg string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Warn(msg, args...)
}

// chain derives the ordered locale list consulted during resolution. An
// override (per-call locale) replaces the active locale at the head.
func (c *Composer) chain(override string) []string {
	active := override
	if active == "" {
		active = c.Locale()
	}
	return locale.Chain(active, c.FallbackLocale(), c.inst.defaultLocale)
}

type callOpts struct {
	locale string
	def    string
	count  *int
}

// TOption adjusts a single T or Tc call.
type TOption func(*callOpts)

// UseLocale overrides the active locale for one call.
func UseLocale(loc string) TOption {
	return func(o *callOpts) { o.locale = loc }
}

// Default sets the text returned when the key resolves nowhere, instead of
// the instance-wide missing-key policy.
func Default(text string) TOption {
	return func(o *callOpts) { o.def = text }
}

// splitArgs sorts variadic T arguments into interpolation arguments and
// call options. Named maps merge; everything else appends positionally.
func splitArgs(args []any) (message.Args, callOpts) {
	var out message.Args
	var opts callOpts

	for _, arg := range args {
		switch v := arg.(type) {
		case TOption:
			v(&opts)
		case M:
			out = out.Merge(message.Args{Named: v})
		case map[string]any:
			out = out.Merge(message.Args{Named: v})
		case []any:
			out.Positional = append(out.Positional, v...)
		default:
			out.Positional = append(out.Positional, v)
		}
	}

	return out, opts
}
