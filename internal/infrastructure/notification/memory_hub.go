package notification

import (
	"context"
	"sync"

	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// subscriberBuffer is the per-subscriber backlog. Slow subscribers lose
// events past it instead of blocking publishers.
const subscriberBuffer = 64

type subscriber struct {
	ch   chan []byte
	done chan struct{} // closed when the subscription ends
}

// MemoryHub fans events out to in-process subscribers, keyed by channel.
// It only reaches subscribers connected to the same instance.
type MemoryHub struct {
	mu       sync.RWMutex
	subs     map[string]map[string]subscriber // channel -> subscriber id
	closed   bool
	watchers sync.WaitGroup
	logger   *zap.Logger
}

var (
	_ interfaces.IEventPublisher  = (*MemoryHub)(nil)
	_ interfaces.IEventSubscriber = (*MemoryHub)(nil)
)

func NewMemoryHub(logger *zap.Logger) *MemoryHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryHub{
		subs:   make(map[string]map[string]subscriber),
		logger: logger.Named("notification.memory"),
	}
}

// Publish never blocks. Delivering to nobody is not an error.
func (h *MemoryHub) Publish(_ context.Context, channel string, payload []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, sub := range h.subs[channel] {
		select {
		case sub.ch <- payload:
		default:
			h.logger.Warn("dropped event for slow subscriber",
				zap.String("channel", channel),
				zap.String("subscriber_id", id),
			)
		}
	}
	return nil
}

// Subscribe registers a subscriber on channel. The subscription ends when
// ctx is done or the returned cancel function is called, whichever is first;
// the event channel is closed then.
func (h *MemoryHub) Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error) {
	id := uuid.NewString()
	sub := subscriber{ch: make(chan []byte, subscriberBuffer), done: make(chan struct{})}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}, nil
	}
	if h.subs[channel] == nil {
		h.subs[channel] = make(map[string]subscriber)
	}
	h.subs[channel][id] = sub
	h.mu.Unlock()

	h.logger.Debug("subscriber added", zap.String("channel", channel), zap.String("subscriber_id", id))

	var once sync.Once
	cancel := func() { once.Do(func() { h.unsubscribe(channel, id) }) }

	h.watchers.Add(1)
	go func() {
		defer h.watchers.Done()
		select {
		case <-ctx.Done():
			cancel()
		case <-sub.done:
		}
	}()
	return sub.ch, cancel, nil
}

func (h *MemoryHub) unsubscribe(channel, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.subs[channel][id]
	if !ok {
		return
	}
	delete(h.subs[channel], id)
	sub.end()
	if len(h.subs[channel]) == 0 {
		delete(h.subs, channel)
	}
}

func (s subscriber) end() {
	close(s.done)
	close(s.ch)
}

// Subscribers reports how many subscribers channel currently has.
func (h *MemoryHub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[channel])
}

// Close ends every subscription. Later subscriptions are closed immediately.
func (h *MemoryHub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for channel, subs := range h.subs {
		for _, sub := range subs {
			sub.end()
		}
		delete(h.subs, channel)
	}
	h.closed = true
	return nil
}
