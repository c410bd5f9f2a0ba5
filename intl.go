package intl

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/intl/pkg/message"
)

// Instance is the root handle for one i18n runtime: it owns the global
// composer, tracks scoped composers for ancestor lookup, and caches
// compiled messages. Multiple instances are fully independent.
type Instance struct {
	id            string
	global        *Composer
	defaultLocale string
	legacy        bool
	logger        *slog.Logger

	// Registries for scoped composers. scopes maps scope-context ids to
	// composers for ancestor lookup; byID resolves composer ids so child
	// composers never hold a direct parent pointer.
	scopes map[string]scopeEntry
	byID   map[string]*Composer
	mu     sync.RWMutex

	compiled sync.Map // message source -> *message.Message
	closed   atomic.Bool
}

type scopeEntry struct {
	composer *Composer
	shared   bool
}

// New creates an Instance and its global composer. The global composer is
// active immediately; scoped composers are requested through Use.
func New(opts ...Option) (*Instance, error) {
	cfg := instanceConfig{
		locale:        DefaultLocale,
		defaultLocale: DefaultLocale,
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if cfg.locale == "" {
		return nil, ErrEmptyLocale
	}

	inst := &Instance{
		id:            uuid.NewString(),
		defaultLocale: cfg.defaultLocale,
		legacy:        cfg.legacy,
		logger:        cfg.logger,
		scopes:        make(map[string]scopeEntry),
		byID:          make(map[string]*Composer),
	}

	inst.global = newComposer(inst, ScopeGlobal, "", composerConfig{
		locale:          cfg.locale,
		fallbackLocale:  cfg.fallbackLocale,
		messages:        cfg.messages,
		datetimeFormats: cfg.datetimeFormats,
		numberFormats:   cfg.numberFormats,
		rules:           cfg.rules,
		missingKey:      cfg.missingKey,
		missingHandler:  cfg.missingHandler,
		formatProvider:  cfg.formatProvider,
		logger:          cfg.logger,
	})
	inst.byID[inst.global.id] = inst.global

	return inst, nil
}

// ID returns the instance identifier.
func (i *Instance) ID() string { return i.id }

// Global returns the instance's global composer.
func (i *Instance) Global() *Composer { return i.global }

// Legacy reports whether the instance was configured in legacy mode.
func (i *Instance) Legacy() bool { return i.legacy }

// Close tears the instance down: every composer created through it is
// disposed, the global composer included. Idempotent.
func (i *Instance) Close() {
	if !i.closed.CompareAndSwap(false, true) {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	for _, entry := range i.scopes {
		entry.composer.dispose()
	}
	i.scopes = make(map[string]scopeEntry)
	i.byID = make(map[string]*Composer)
	i.global.dispose()
}

func (i *Instance) register(ctxID string, c *Composer, shared bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.scopes[ctxID] = scopeEntry{composer: c, shared: shared}
	i.byID[c.id] = c
}

func (i *Instance) unregister(ctxID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	entry, ok := i.scopes[ctxID]
	if !ok {
		return
	}
	delete(i.scopes, ctxID)
	delete(i.byID, entry.composer.id)
}

// lookupComposer resolves a composer id to a live composer, or nil.
func (i *Instance) lookupComposer(id string) *Composer {
	if id == "" {
		return nil
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.byID[id]
}

// nearestAncestor walks the scope-context chain upward and returns the
// first registered composer shared with its children.
func (i *Instance) nearestAncestor(ctx ScopeContext) *Composer {
	i.mu.RLock()
	defer i.mu.RUnlock()

	for ; ctx != nil; ctx = ctx.Parent() {
		entry, ok := i.scopes[ctx.ID()]
		if ok && entry.shared && !entry.composer.Disposed() {
			return entry.composer
		}
	}
	return nil
}

// compile parses a message source through the instance-wide cache. Compile
// is pure, so caching by source is safe across locales and composers.
func (i *Instance) compile(source string) (*message.Message, error) {
	if cached, ok := i.compiled.Load(source); ok {
		return cached.(*message.Message), nil
	}

	msg, err := message.Compile(source)
	if err != nil {
		return nil, err
	}

	actual, _ := i.compiled.LoadOrStore(source, msg)
	return actual.(*message.Message), nil
}
