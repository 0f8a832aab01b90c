package notification

import (
	"context"
	"fmt"
	"time"

	"cotizador_seguros/internal/infrastructure/config"
	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisHub relays events through Redis Pub/Sub so that a websocket held by
// any instance receives events published by any other.
type RedisHub struct {
	client *redis.Client
	logger *zap.Logger
}

var (
	_ interfaces.IEventPublisher  = (*RedisHub)(nil)
	_ interfaces.IEventSubscriber = (*RedisHub)(nil)
)

// NewRedisClient connects and pings with a short timeout.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRedisHub(client *redis.Client, logger *zap.Logger) *RedisHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisHub{client: client, logger: logger.Named("notification.redis")}
}

func (h *RedisHub) Publish(ctx context.Context, channel string, payload []byte) error {
	receivers, err := h.client.Publish(ctx, channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	h.logger.Debug("event published", zap.String("channel", channel), zap.Int64("receivers", receivers))
	return nil
}

// Subscribe waits for the subscription to be confirmed before returning, so
// an event published right after Subscribe returns is not missed.
func (h *RedisHub) Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error) {
	subCtx, cancel := context.WithCancel(ctx)
	pubsub := h.client.Subscribe(subCtx, channel)
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	out := make(chan []byte, subscriberBuffer)
	go func() {
		defer close(out)
		defer pubsub.Close()

		msgs := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				default:
					h.logger.Warn("dropped event for slow subscriber", zap.String("channel", channel))
				}
			}
		}
	}()
	return out, cancel, nil
}

func (h *RedisHub) Close() error {
	return h.client.Close()
}
