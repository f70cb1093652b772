package reactive

import (
	"slices"
	"sync"
)

// Derived is a read-only value computed from one or more sources. It is computed
// once on construction and recomputed once for every notification from any of
// its sources, always from the latest value of each source. Every recomputation
// is republished, even when the result is equal to the previous one.
//
// Derived has no Set: the only way to change it is to change a source.
type Derived[T any] struct {
	mu      sync.Mutex
	ready   bool
	gen     uint64
	compute func() T
	out     *Writable[T]

	unsubs    []func()
	closeOnce sync.Once
}

// Derive builds a view over a single source.
func Derive[S, T any](src Readable[S], fn func(S) T) *Derived[T] {
	var latest S
	d := &Derived[T]{compute: func() T { return fn(latest) }}
	d.unsubs = append(d.unsubs, src.Subscribe(func(v S) {
		d.changed(func() { latest = v })
	}))
	d.start()
	return d
}

// Derive2 builds a view over two sources of different types.
func Derive2[A, B, T any](a Readable[A], b Readable[B], fn func(A, B) T) *Derived[T] {
	var (
		va A
		vb B
	)
	d := &Derived[T]{compute: func() T { return fn(va, vb) }}
	d.unsubs = append(d.unsubs,
		a.Subscribe(func(v A) { d.changed(func() { va = v }) }),
		b.Subscribe(func(v B) { d.changed(func() { vb = v }) }),
	)
	d.start()
	return d
}

// DeriveAll builds a view over a list of sources of the same type. fn receives
// the latest values in source order; the slice is fresh on every call.
func DeriveAll[S, T any](srcs []Readable[S], fn func([]S) T) *Derived[T] {
	latest := make([]S, len(srcs))
	d := &Derived[T]{compute: func() T { return fn(slices.Clone(latest)) }}
	for i, src := range srcs {
		d.unsubs = append(d.unsubs, src.Subscribe(func(v S) {
			d.changed(func() { latest[i] = v })
		}))
	}
	d.start()
	return d
}

// Get returns the cached value; it never recomputes.
func (d *Derived[T]) Get() T {
	return d.out.Get()
}

// Subscribe registers fn. See Readable.
func (d *Derived[T]) Subscribe(fn func(T)) func() {
	return d.out.Subscribe(fn)
}

// Close detaches the view from its sources. The last value stays readable.
func (d *Derived[T]) Close() {
	d.closeOnce.Do(func() {
		for _, unsub := range d.unsubs {
			unsub()
		}
	})
}

// changed records a source value through record and republishes. Source
// subscriptions fire immediately while the view is being built; those calls only
// record, start computes the initial value once all sources are attached.
func (d *Derived[T]) changed(record func()) {
	d.mu.Lock()
	record()
	if !d.ready {
		d.mu.Unlock()
		return
	}
	d.gen++
	gen := d.gen
	v := d.compute()
	d.mu.Unlock()

	d.out.publish(v, gen)
}

func (d *Derived[T]) start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out = NewWritable(d.compute())
	d.ready = true
}
