package interfaces

import "context"

// IEventPublisher delivers a serialized event to every subscriber of channel.
type IEventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// IEventSubscriber streams payloads published on channel until ctx is done.
// The returned function releases the subscription.
type IEventSubscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)
}
