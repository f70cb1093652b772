package reactive

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritable_GetReturnsLastSet(t *testing.T) {
	w := NewWritable([]string{"a"})
	assert.Equal(t, []string{"a"}, w.Get())

	inputs := [][]string{{"b"}, {}, {"c", "d"}, nil}
	for _, in := range inputs {
		w.Set(in)
		assert.Equal(t, in, w.Get())
	}
}

func TestWritable_SubscribeCallsImmediately(t *testing.T) {
	w := NewWritable(1)

	var got []int
	unsubscribe := w.Subscribe(func(v int) { got = append(got, v) })
	defer unsubscribe()

	require.Equal(t, []int{1}, got, "subscriber must see the current value before any Set")

	w.Set(2)
	w.Set(3)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestWritable_NotifiesInRegistrationOrder(t *testing.T) {
	w := NewWritable(0)

	var order []string
	w.Subscribe(func(v int) {
		if v > 0 {
			order = append(order, "first")
		}
	})
	w.Subscribe(func(v int) {
		if v > 0 {
			order = append(order, "second")
		}
	})

	w.Set(1)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestWritable_Unsubscribe(t *testing.T) {
	w := NewWritable("x")

	calls := 0
	unsubscribe := w.Subscribe(func(string) { calls++ })
	require.Equal(t, 1, calls)

	unsubscribe()
	unsubscribe() // idempotent

	w.Set("y")
	w.Set("z")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, w.SubscriberCount())
}

func TestWritable_UnsubscribeDuringFanOut(t *testing.T) {
	w := NewWritable(0)

	var secondCalls []int
	var unsubscribeSecond func()
	w.Subscribe(func(v int) {
		if v == 1 {
			unsubscribeSecond()
		}
	})
	unsubscribeSecond = w.Subscribe(func(v int) { secondCalls = append(secondCalls, v) })

	w.Set(1)
	w.Set(2)
	assert.Equal(t, []int{0}, secondCalls, "no invocation may happen after unsubscribe, even mid fan-out")
}

func TestWritable_ReentrantSetIsDeliveredInOrder(t *testing.T) {
	w := NewWritable(0)

	w.Subscribe(func(v int) {
		if v == 1 {
			w.Set(2)
		}
	})
	var seen []int
	w.Subscribe(func(v int) { seen = append(seen, v) })

	w.Set(1)
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, 2, w.Get())
}

func TestWritable_SubscribeDuringFanOutSkipsQueuedValues(t *testing.T) {
	w := NewWritable(0)

	var late []int
	w.Subscribe(func(v int) {
		if v == 1 {
			w.Subscribe(func(v int) { late = append(late, v) })
		}
	})

	w.Set(1)
	w.Set(2)
	assert.Equal(t, []int{1, 2}, late)
}

func TestWritable_SetDuringFirstCallIsDeliveredAfterIt(t *testing.T) {
	w := NewWritable("A")

	started := make(chan struct{})
	setReturned := make(chan struct{})
	go func() {
		<-started
		w.Set("B")
		close(setReturned)
	}()

	var (
		mu  sync.Mutex
		got []string
	)
	unsubscribe := w.Subscribe(func(v string) {
		if v == "A" {
			close(started)
			select {
			case <-setReturned:
			case <-time.After(time.Second):
			}
		}
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	defer unsubscribe()

	<-setReturned
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"A", "B"}, got, "a concurrent Set must not overtake the first call")
	assert.Equal(t, "B", w.Get())
}

func TestWritable_ReentrantSubscribeGetsCurrentValueAfterRound(t *testing.T) {
	w := NewWritable(0)

	var order []string
	w.Subscribe(func(v int) {
		if v == 1 {
			w.Subscribe(func(v int) { order = append(order, "late") })
		}
	})
	w.Subscribe(func(v int) {
		if v == 1 {
			order = append(order, "second")
		}
	})

	w.Set(1)
	assert.Equal(t, []string{"second", "late"}, order)
}

func TestWritable_PanickingSubscriberDoesNotWedgeStore(t *testing.T) {
	w := NewWritable(0)
	unsubscribe := w.Subscribe(func(v int) {
		if v == 1 {
			panic("boom")
		}
	})

	assert.Panics(t, func() { w.Set(1) })
	unsubscribe()

	var got []int
	w.Subscribe(func(v int) { got = append(got, v) })
	w.Set(2)
	assert.Equal(t, []int{1, 2}, got)
}

func TestWritable_Update(t *testing.T) {
	w := NewWritable([]int{1, 2})
	w.Update(func(xs []int) []int { return append(append([]int(nil), xs...), 3) })
	assert.Equal(t, []int{1, 2, 3}, w.Get())
}

func TestWritable_ConcurrentWriters(t *testing.T) {
	w := NewWritable(0)

	var mu sync.Mutex
	last := -1
	monotonic := true
	w.Subscribe(func(v int) {
		mu.Lock()
		defer mu.Unlock()
		if v < last {
			monotonic = false
		}
		last = v
	})

	var counter sync.Mutex
	next := 0
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				counter.Lock()
				next++
				v := next
				// Sets are issued in increasing order under the lock so any
				// inversion observed by the subscriber is a store bug.
				w.Set(v)
				counter.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.True(t, monotonic)
	assert.Equal(t, 400, w.Get())
}
