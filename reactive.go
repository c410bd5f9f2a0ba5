package intl

import "sync"

// Value is a mutable observable cell: reads pull the current value, writes
// publish it to subscribers synchronously. Composers expose locale and
// fallback state through Values so a rendering layer can re-render on
// change without the runtime depending on any particular reactivity system.
type Value[T any] struct {
	value  T
	subs   map[int]func(T)
	nextID int
	mu     sync.RWMutex
}

// NewValue creates a cell holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set stores a new value and notifies subscribers. The write is visible to
// any Get that starts after Set returns; subscribers run synchronously on
// the caller's goroutine.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	subs := make([]func(T), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
}

// Subscribe registers fn to run on every Set. The returned function cancels
// the subscription and is safe to call more than once.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}
