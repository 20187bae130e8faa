package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestTopic(t *testing.T) {
	t.Run("new subscribers receive the latest value", func(t *testing.T) {
		topic := New[int]()
		topic.Publish(1)
		topic.Publish(2)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ch := topic.Subscribe(ctx)

		assert.Equal(t, 2, receive(t, ch))
	})

	t.Run("unread values are replaced by newer ones", func(t *testing.T) {
		topic := New[string]()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ch := topic.Subscribe(ctx)

		topic.Publish("stale")
		topic.Publish("fresh")

		assert.Equal(t, "fresh", receive(t, ch))
		select {
		case v := <-ch:
			t.Fatalf("expected no more values, got %q", v)
		default:
		}
	})

	t.Run("latest reports whether a value exists", func(t *testing.T) {
		topic := New[int]()
		_, ok := topic.Latest()
		assert.False(t, ok)

		topic.Publish(7)
		v, ok := topic.Latest()
		assert.True(t, ok)
		assert.Equal(t, 7, v)
	})

	t.Run("cancelling the context unsubscribes", func(t *testing.T) {
		topic := New[int]()
		ctx, cancel := context.WithCancel(context.Background())
		ch := topic.Subscribe(ctx)
		require.Equal(t, 1, topic.subscribers())

		cancel()
		assert.Eventually(t, func() bool { return topic.subscribers() == 0 }, time.Second, 5*time.Millisecond)
		_, ok := <-ch
		assert.False(t, ok, "channel should be closed after unsubscribe")
	})

	t.Run("close ends every subscription", func(t *testing.T) {
		topic := New[int]()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ch := topic.Subscribe(ctx)

		topic.Close()
		topic.Publish(3)

		_, ok := <-ch
		assert.False(t, ok)
		late := topic.Subscribe(ctx)
		_, ok = <-late
		assert.False(t, ok, "subscribing to a closed topic yields a closed channel")
	})
}
