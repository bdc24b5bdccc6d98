package pubsub

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes events with PUBLISH on the fixed channel.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(cfg RedisConfig) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisPublisher{client: client}, nil
}

// NewRedisPublisherFromClient wraps an already configured client.
func NewRedisPublisherFromClient(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := encode(event)
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, Channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.EventType(), err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
