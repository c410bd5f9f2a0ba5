package intl

import "sync/atomic"

// EventName identifies a devtools event on the wire.
type EventName string

const (
	EventInit          EventName = "I18N_INIT"
	EventTranslate     EventName = "FUNCTION_TRANSLATE"
	EventLocaleChanged EventName = "LOCALE_CHANGED"
)

// DevtoolsEvent is the structured payload delivered to an installed emitter.
type DevtoolsEvent struct {
	Name       EventName
	InstanceID string
	ScopeID    string
	Locale     string
	Key        string
	Result     string
}

// Emitter receives devtools events from every composer in the process.
type Emitter interface {
	Emit(event DevtoolsEvent)
}

type emitterHook struct {
	emitter Emitter
}

var devtoolsHook atomic.Pointer[emitterHook]

// SetDevtoolsHook installs a process-wide devtools emitter. Passing nil
// removes the current one. Safe to call at any time from any goroutine;
// events already emitted are unaffected.
func SetDevtoolsHook(emitter Emitter) {
	if emitter == nil {
		devtoolsHook.Store(nil)
		return
	}
	devtoolsHook.Store(&emitterHook{emitter: emitter})
}

// DevtoolsHook returns the currently installed emitter, or nil.
func DevtoolsHook() Emitter {
	hook := devtoolsHook.Load()
	if hook == nil {
		return nil
	}
	return hook.emitter
}

// emitDevtools delivers an event to the installed emitter, if any. Emission
// is a side channel: a panicking emitter never affects the translate result.
func emitDevtools(event DevtoolsEvent) {
	hook := devtoolsHook.Load()
	if hook == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	hook.emitter.Emit(event)
}
