// Package signal provides small reactive values: a readable Accessor, a
// writable Signal that notifies subscribers on change, and static values
// that satisfy the same interface.
package signal

import "sync"

// Accessor is anything that yields a current value.
type Accessor[T any] interface {
	Get() T
}

// Observable is an Accessor that can report changes.
type Observable[T any] interface {
	Accessor[T]
	Subscribe(fn func(T)) (unsubscribe func())
}

type static[T any] struct{ v T }

func (s static[T]) Get() T { return s.v }

// Of wraps a constant value as an Accessor.
func Of[T any](v T) Accessor[T] {
	return static[T]{v: v}
}

// Func adapts a function to an Accessor. It is not observable.
type Func[T any] func() T

// Get calls f.
func (f Func[T]) Get() T { return f() }

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Signal is a mutable value. Subscribers run synchronously on the goroutine
// that changed the value, in subscription order, after the value is stored.
type Signal[T comparable] struct {
	mu     sync.RWMutex
	value  T
	subs   []subscriber[T]
	nextID uint64
}

// New creates a Signal holding v.
func New[T comparable](v T) *Signal[T] {
	return &Signal[T]{value: v}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores v and notifies subscribers if it differs from the current
// value. It reports whether the value changed.
func (s *Signal[T]) Set(v T) bool {
	s.mu.Lock()
	if s.value == v {
		s.mu.Unlock()
		return false
	}
	s.value = v
	subs := append([]subscriber[T](nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
	return true
}

// Update sets the value to fn(current).
func (s *Signal[T]) Update(fn func(T) T) bool {
	s.mu.Lock()
	next := fn(s.value)
	s.mu.Unlock()
	return s.Set(next)
}

// Subscribe registers fn to be called with each new value.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Watch calls fn whenever a changes. Static accessors never change, so
// Watch on them is a no-op. The returned function stops watching.
func Watch[T any](a Accessor[T], fn func(T)) func() {
	if o, ok := a.(Observable[T]); ok {
		return o.Subscribe(fn)
	}
	return func() {}
}

// Get reads a possibly nil accessor, returning def for nil.
func Get[T any](a Accessor[T], def T) T {
	if a == nil {
		return def
	}
	return a.Get()
}
