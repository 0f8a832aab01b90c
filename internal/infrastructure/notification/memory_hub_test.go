package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "channel closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestMemoryHub_FanOut(t *testing.T) {
	hub := NewMemoryHub(nil)
	defer hub.Close()
	ctx := t.Context()

	a, _, err := hub.Subscribe(ctx, "chat.thread-1")
	require.NoError(t, err)
	b, _, err := hub.Subscribe(ctx, "chat.thread-1")
	require.NoError(t, err)
	other, _, err := hub.Subscribe(ctx, "chat.thread-2")
	require.NoError(t, err)

	require.NoError(t, hub.Publish(ctx, "chat.thread-1", []byte(`{"type":"QUOTE_READY"}`)))

	assert.JSONEq(t, `{"type":"QUOTE_READY"}`, string(receive(t, a)))
	assert.JSONEq(t, `{"type":"QUOTE_READY"}`, string(receive(t, b)))
	select {
	case <-other:
		t.Fatal("other channel received an event")
	default:
	}
}

func TestMemoryHub_PublishWithoutSubscribers(t *testing.T) {
	hub := NewMemoryHub(nil)
	assert.NoError(t, hub.Publish(context.Background(), "chat.nobody", []byte("x")))
}

func TestMemoryHub_CancelClosesChannel(t *testing.T) {
	hub := NewMemoryHub(nil)
	ch, cancel, err := hub.Subscribe(context.Background(), "chat.t")
	require.NoError(t, err)
	assert.Equal(t, 1, hub.Subscribers("chat.t"))

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, hub.Subscribers("chat.t"))
}

func TestMemoryHub_ContextCancellation(t *testing.T) {
	hub := NewMemoryHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	ch, _, err := hub.Subscribe(ctx, "chat.t")
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not released")
	}
}

func TestMemoryHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewMemoryHub(nil)
	defer hub.Close()
	_, _, err := hub.Subscribe(t.Context(), "chat.t")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			_ = hub.Publish(context.Background(), "chat.t", []byte("x"))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestMemoryHub_ConcurrentPublishAndCancel(t *testing.T) {
	hub := NewMemoryHub(nil)
	defer hub.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		_, cancel, err := hub.Subscribe(context.Background(), "chat.t")
		require.NoError(t, err)
		go func() {
			defer wg.Done()
			_ = hub.Publish(context.Background(), "chat.t", []byte("x"))
		}()
		go func() {
			defer wg.Done()
			cancel()
		}()
	}
	wg.Wait()
}

func TestMemoryHub_SubscribeAfterClose(t *testing.T) {
	hub := NewMemoryHub(nil)
	require.NoError(t, hub.Close())

	ch, cancel, err := hub.Subscribe(context.Background(), "chat.t")
	require.NoError(t, err)
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
}

func waitWatchers(t *testing.T, hub *MemoryHub) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		hub.watchers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("subscription watcher still running")
	}
}

func TestMemoryHub_CancelStopsWatcher(t *testing.T) {
	hub := NewMemoryHub(nil)
	_, cancel, err := hub.Subscribe(context.Background(), "chat.t")
	require.NoError(t, err)

	cancel()
	waitWatchers(t, hub)
}

func TestMemoryHub_CloseStopsWatchers(t *testing.T) {
	hub := NewMemoryHub(nil)
	for i := 0; i < 3; i++ {
		_, _, err := hub.Subscribe(context.Background(), "chat.t")
		require.NoError(t, err)
	}

	require.NoError(t, hub.Close())
	waitWatchers(t, hub)
}
