package reactive

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Readable is the read side shared by writable stores and derived views.
type Readable[T any] interface {
	Get() T
	// Subscribe calls fn with the current value and again after every change,
	// never concurrently and always in write order. The returned func removes fn; it is safe to call more than once.
	Subscribe(fn func(T)) (unsubscribe func())
}

type subscriber[T any] struct {
	fn     func(T)
	since  uint64 // version current at registration; older deliveries are skipped
	active atomic.Bool
}

type delivery[T any] struct {
	value   T
	version uint64
	target  *subscriber[T] // nil for a Set; the new subscriber for its first call
}

// Writable holds the current snapshot of one collection and fans every
// replacement out to its subscribers in registration order.
//
// Set is synchronous: when it returns, every subscriber has seen the new value.
// The one exception is a Set issued while a fan-out for the same store is already
// running (from inside a subscriber, or from another goroutine). That value is
// queued and delivered by the running fan-out right after the current round, so
// subscribers always observe values in write order and re-entrant writes never
// deadlock. The first call of a new subscriber goes through the same queue, so
// it is never overtaken by a later Set.
type Writable[T any] struct {
	mu        sync.Mutex
	value     T
	version   uint64
	published uint64
	subs      []*subscriber[T]
	pending   []delivery[T]
	flushing  bool
}

// NewWritable creates a store holding initial.
func NewWritable[T any](initial T) *Writable[T] {
	return &Writable[T]{value: initial}
}

// Get returns the current snapshot.
func (w *Writable[T]) Get() T {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.value
}

// Set replaces the snapshot and notifies every subscriber with v.
func (w *Writable[T]) Set(v T) {
	w.mu.Lock()
	w.storeLocked(v)
}

// Update replaces the snapshot with fn applied to the current one. It is a
// convenience over Get and Set and is not atomic with respect to other writers.
func (w *Writable[T]) Update(fn func(T) T) {
	w.Set(fn(w.Get()))
}

// Subscribe registers fn. See Readable.
//
// On a quiescent store fn has been called with the current value when Subscribe
// returns. If a fan-out is running (fn subscribed from inside a subscriber, or
// concurrently with a Set on another goroutine), the first call is made by that
// fan-out right after the values queued before it.
func (w *Writable[T]) Subscribe(fn func(T)) func() {
	s := &subscriber[T]{fn: fn}
	s.active.Store(true)

	w.mu.Lock()
	s.since = w.version
	w.subs = append(w.subs, s)
	w.enqueueLocked(delivery[T]{value: w.value, version: w.version, target: s})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.active.Store(false)
			w.mu.Lock()
			w.subs = slices.DeleteFunc(w.subs, func(x *subscriber[T]) bool { return x == s })
			w.mu.Unlock()
		})
	}
}

// SubscriberCount reports the number of registered subscribers.
func (w *Writable[T]) SubscriberCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

// publish is Set for derived views: values computed for an older generation
// than one already published are dropped.
func (w *Writable[T]) publish(v T, gen uint64) {
	w.mu.Lock()
	if gen <= w.published {
		w.mu.Unlock()
		return
	}
	w.published = gen
	w.storeLocked(v)
}

// storeLocked must be called with w.mu held; it returns with w.mu released.
func (w *Writable[T]) storeLocked(v T) {
	w.version++
	w.value = v
	w.enqueueLocked(delivery[T]{value: v, version: w.version})
}

// enqueueLocked must be called with w.mu held; it returns with w.mu released.
// The caller delivers the queue itself unless a fan-out is already running.
func (w *Writable[T]) enqueueLocked(d delivery[T]) {
	w.pending = append(w.pending, d)
	if w.flushing {
		w.mu.Unlock()
		return
	}
	w.flushing = true
	w.mu.Unlock()
	w.flush()
}

func (w *Writable[T]) flush() {
	done := false
	defer func() {
		// A panicking subscriber must not leave the store stuck in flushing mode.
		if !done {
			w.mu.Lock()
			w.flushing = false
			w.pending = nil
			w.mu.Unlock()
		}
	}()

	w.mu.Lock()
	for len(w.pending) > 0 {
		d := w.pending[0]
		w.pending = w.pending[1:]
		var subs []*subscriber[T]
		if d.target == nil {
			subs = slices.Clone(w.subs)
		}
		w.mu.Unlock()

		if t := d.target; t != nil && t.active.Load() {
			t.fn(d.value)
		}
		for _, s := range subs {
			if s.active.Load() && d.version > s.since {
				s.fn(d.value)
			}
		}

		w.mu.Lock()
	}
	w.flushing = false
	w.pending = nil
	w.mu.Unlock()
	done = true
}
