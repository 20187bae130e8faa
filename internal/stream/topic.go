// Package stream provides a latest-value broadcast topic.
//
// A Topic remembers the last published value and replays it to new
// subscribers. Each subscriber owns a one-slot mailbox: when a newer value is
// published before the subscriber read the previous one, the unread value is
// replaced. Slow subscribers therefore only ever see the most recent state and
// never block publishers.
package stream

import (
	"context"
	"sync"
)

// Topic is a latest-value broadcast channel for values of type T.
// The zero value is not usable; create topics with New.
type Topic[T any] struct {
	mu     sync.Mutex
	value  T
	has    bool
	subs   map[*subscriber[T]]struct{}
	closed bool
}

type subscriber[T any] struct {
	ch chan T
}

// New creates an empty topic.
func New[T any]() *Topic[T] {
	return &Topic[T]{subs: make(map[*subscriber[T]]struct{})}
}

// Publish stores v as the latest value and offers it to every subscriber.
func (t *Topic[T]) Publish(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.value = v
	t.has = true
	for s := range t.subs {
		offer(s.ch, v)
	}
}

// Latest returns the last published value and whether one exists.
func (t *Topic[T]) Latest() (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value, t.has
}

// Subscribe returns a channel receiving the latest value (if any) followed by
// every later publication. The channel is closed when ctx is done or the topic
// is closed.
func (t *Topic[T]) Subscribe(ctx context.Context) <-chan T {
	s := &subscriber[T]{ch: make(chan T, 1)}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		close(s.ch)
		return s.ch
	}
	if t.has {
		s.ch <- t.value
	}
	t.subs[s] = struct{}{}
	t.mu.Unlock()

	go func() {
		<-ctx.Done()
		t.unsubscribe(s)
	}()
	return s.ch
}

// subscribers returns the number of active subscriptions.
func (t *Topic[T]) subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// Close closes every subscriber channel. Later publications are ignored.
func (t *Topic[T]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	for s := range t.subs {
		close(s.ch)
		delete(t.subs, s)
	}
}

func (t *Topic[T]) unsubscribe(s *subscriber[T]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.subs[s]; !ok {
		return
	}
	delete(t.subs, s)
	close(s.ch)
}

// offer puts v into the one-slot mailbox, discarding an unread older value.
// Callers hold the topic lock, so there is a single writer per mailbox.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- v
}
