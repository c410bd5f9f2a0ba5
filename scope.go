package intl

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/intl/pkg/plural"
)

// Scope selects the composition policy for a composer requested through
// Instance.Use.
type Scope int

const (
	// ScopeLocal creates a composer owned by the requesting scope context.
	ScopeLocal Scope = iota
	// ScopeGlobal merges the request's resources into the global composer
	// and returns the global composer itself.
	ScopeGlobal
	// ScopeParent returns the nearest shared ancestor composer, or the
	// global composer when no ancestor exists.
	ScopeParent
)

func (s Scope) String() string {
	switch s {
	case ScopeLocal:
		return "local"
	case ScopeGlobal:
		return "global"
	case ScopeParent:
		return "parent"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// ScopeContext is the host-provided call-site binding a scoped composer
// attaches to. Hosts with their own component or request scopes implement
// this; others can use SetupContext.
type ScopeContext interface {
	// ID identifies this scope; stable for the scope's lifetime.
	ID() string
	// Parent returns the enclosing scope, or nil at the root.
	Parent() ScopeContext
	// OnTeardown registers fn to run when the scope is torn down.
	OnTeardown(fn func())
}

// SetupContext is a plain ScopeContext implementation for hosts without a
// native scope primitive, and for tests.
type SetupContext struct {
	id        string
	parent    ScopeContext
	teardowns []func()
	torn      bool
	mu        sync.Mutex
}

// NewSetupContext creates a scope context under parent; parent may be nil.
func NewSetupContext(parent ScopeContext) *SetupContext {
	return &SetupContext{id: uuid.NewString(), parent: parent}
}

// ID implements ScopeContext.
func (s *SetupContext) ID() string { return s.id }

// Parent implements ScopeContext.
func (s *SetupContext) Parent() ScopeContext { return s.parent }

// OnTeardown implements ScopeContext. Registering after teardown runs fn
// immediately.
func (s *SetupContext) OnTeardown(fn func()) {
	s.mu.Lock()
	if s.torn {
		s.mu.Unlock()
		fn()
		return
	}
	s.teardowns = append(s.teardowns, fn)
	s.mu.Unlock()
}

// Teardown runs the registered teardown functions in reverse registration
// order. Idempotent.
func (s *SetupContext) Teardown() {
	s.mu.Lock()
	if s.torn {
		s.mu.Unlock()
		return
	}
	s.torn = true
	fns := s.teardowns
	s.teardowns = nil
	s.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// UseConfig configures a composer requested through Instance.Use. The zero
// value asks for a local composer that inherits its ancestor's locale and
// falls back to the global resources on resolution misses.
type UseConfig struct {
	// Scope selects the composition policy. Default ScopeLocal.
	Scope Scope

	// InheritLocale controls whether the composer reads locale state from
	// its resolved ancestor. Defaults to true when Locale is empty, false
	// otherwise. Only meaningful for ScopeLocal.
	InheritLocale *bool

	// Locale and FallbackLocale seed the composer's own locale state when
	// it does not inherit.
	Locale         string
	FallbackLocale []string

	// Per-locale resource trees contributed by this scope. With ScopeGlobal
	// they are deep-merged into the global composer at construction time.
	Messages        map[string]map[string]any
	DatetimeFormats map[string]map[string]any
	NumberFormats   map[string]map[string]any

	// PluralRules are custom rules scoped to this composer.
	PluralRules map[string]plural.Rule

	// SharedWithChildren makes this composer visible to descendant scopes
	// requesting ScopeParent. Default true; set Unshared to opt out.
	Unshared bool

	// NoFallbackRoot disables retrying resolution misses against the
	// global composer's resources.
	NoFallbackRoot bool

	// MissingKey overrides the instance's missing-key policy for this
	// composer.
	MissingKey MissingKeyFunc
}

// Use returns the composer for a call-site scope, applying the scope policy
// from cfg. It fails with ErrNotInstalled when the instance is gone,
// ErrMustBeCalledInSetup without a scope context, and
// ErrNotAvailableInLegacyMode when a legacy-mode root is asked for local
// scope features.
func (i *Instance) Use(ctx ScopeContext, cfg UseConfig) (*Composer, error) {
	if i == nil || i.closed.Load() {
		return nil, ErrNotInstalled
	}
	if ctx == nil {
		return nil, ErrMustBeCalledInSetup
	}

	switch cfg.Scope {
	case ScopeGlobal:
		i.mergeIntoGlobal(cfg)
		return i.global, nil

	case ScopeParent:
		if i.legacy {
			return nil, ErrNotAvailableInLegacyMode
		}
		// Falling through to the global composer when no shared ancestor
		// exists is expected, not an error.
		if parent := i.nearestAncestor(ctx.Parent()); parent != nil {
			return parent, nil
		}
		return i.global, nil

	case ScopeLocal:
		if i.legacy {
			return nil, ErrNotAvailableInLegacyMode
		}
		return i.newLocal(ctx, cfg), nil

	default:
		return nil, fmt.Errorf("intl: unknown scope %v", cfg.Scope)
	}
}

// mergeIntoGlobal contributes the request's resources to the global
// composer once, at construction time.
func (i *Instance) mergeIntoGlobal(cfg UseConfig) {
	for loc, tree := range cfg.Messages {
		i.global.messages.Merge(loc, tree)
	}
	for loc, tree := range cfg.DatetimeFormats {
		i.global.datetimeFormats.Merge(loc, tree)
	}
	for loc, tree := range cfg.NumberFormats {
		i.global.numberFormats.Merge(loc, tree)
	}
	for loc, rule := range cfg.PluralRules {
		i.global.rules.Register(loc, rule)
	}
}

func (i *Instance) newLocal(ctx ScopeContext, cfg UseConfig) *Composer {
	parentID := ""
	if parent := i.nearestAncestor(ctx.Parent()); parent != nil {
		parentID = parent.id
	}

	inherit := cfg.Locale == ""
	if cfg.InheritLocale != nil {
		inherit = *cfg.InheritLocale
	}

	resolved := i.global
	if parentID != "" {
		resolved = i.lookupComposer(parentID)
	}

	rules := resolved.rules.Clone()
	rules.RegisterAll(cfg.PluralRules)

	missingKey := cfg.MissingKey
	if missingKey == nil {
		missingKey = i.global.missingKey
	}

	c := newComposer(i, ScopeLocal, parentID, composerConfig{
		locale:          cfg.Locale,
		fallbackLocale:  cfg.FallbackLocale,
		inheritLocale:   inherit,
		fallbackRoot:    !cfg.NoFallbackRoot,
		messages:        cfg.Messages,
		datetimeFormats: cfg.DatetimeFormats,
		numberFormats:   cfg.NumberFormats,
		rules:           rules,
		missingKey:      missingKey,
		missingHandler:  i.global.missingHandler,
		formatProvider:  i.global.formatProvider,
		logger:          i.logger,
	})

	i.register(ctx.ID(), c, !cfg.Unshared)
	ctx.OnTeardown(func() {
		i.unregister(ctx.ID())
		c.dispose()
	})

	return c
}
