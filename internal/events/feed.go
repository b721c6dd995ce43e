// Package events provides a small typed publish/subscribe feed used to tell
// the UI that shared state changed.
package events

import "sync"

// Feed fans values out to subscribers. Delivery never blocks the publisher:
// when a subscriber's buffer is full the value is dropped for that
// subscriber, who is expected to re-read current state on the next value it
// does receive. The zero value is ready to use.
type Feed[T any] struct {
	mu   sync.RWMutex
	subs map[chan T]struct{}
}

// Subscribe registers a new subscriber with the given buffer size (minimum 1)
// and returns its channel together with a cancel func. Cancel is idempotent
// and closes the channel.
func (f *Feed[T]) Subscribe(buffer int) (<-chan T, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan T, buffer)

	f.mu.Lock()
	if f.subs == nil {
		f.subs = make(map[chan T]struct{})
	}
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, ch)
			f.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish sends v to every subscriber with buffer space and reports how many
// received it.
func (f *Feed[T]) Publish(v T) int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	delivered := 0
	for ch := range f.subs {
		select {
		case ch <- v:
			delivered++
		default:
		}
	}
	return delivered
}

// Len reports the number of active subscribers.
func (f *Feed[T]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}
