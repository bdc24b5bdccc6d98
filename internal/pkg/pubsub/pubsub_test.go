package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventJSON(t *testing.T) {
	data, err := encode(NewChatCreatedEvent(7, "Room1", "alice"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"chat_created","chatId":7,"chatName":"Room1","createdBy":"alice"}`, string(data))

	data, err = encode(NewMessageSentEvent(7, "bob", "hi", 1700000000))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"message_sent","chatId":7,"username":"bob","content":"hi","sentAt":1700000000}`, string(data))
}

func TestRedisPublisherPublishesOnChannel(t *testing.T) {
	srv := miniredis.RunT(t)

	pub, err := NewRedisPublisher(RedisConfig{Address: srv.Addr()})
	require.NoError(t, err)
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := redis.NewClient(&redis.Options{Addr: srv.Addr()}).Subscribe(ctx, Channel)
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, pub.Publish(ctx, NewMessageSentEvent(3, "bob", "hello", 42)))

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, Channel, msg.Channel)

		var got MessageSentEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, *NewMessageSentEvent(3, "bob", "hello", 42), got)
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}

func TestRedisPublisherBrokerDown(t *testing.T) {
	srv := miniredis.RunT(t)

	pub, err := NewRedisPublisher(RedisConfig{Address: srv.Addr()})
	require.NoError(t, err)
	defer pub.Close()

	srv.Close()

	err = pub.Publish(context.Background(), NewChatCreatedEvent(1, "Room1", "alice"))
	assert.ErrorContains(t, err, "failed to publish chat_created event")
}

func TestNewRedisPublisherUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := NewRedisPublisher(RedisConfig{Address: addr})
	assert.ErrorContains(t, err, "failed to connect to redis")
}

func TestKafkaPublisherBrokerDown(t *testing.T) {
	// nothing listens on port 1; the producer itself starts without a broker
	pub, err := NewKafkaPublisher(KafkaConfig{Brokers: "127.0.0.1:1", MessageTimeout: 500 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = pub.Publish(ctx, NewChatCreatedEvent(1, "Room1", "alice"))
	assert.ErrorContains(t, err, "failed to publish chat_created event")
	assert.NotErrorIs(t, err, context.DeadlineExceeded)

	start := time.Now()
	require.NoError(t, pub.Close())
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestKafkaPublisherHonoursContext(t *testing.T) {
	pub, err := NewKafkaPublisher(KafkaConfig{Brokers: "127.0.0.1:1", MessageTimeout: 2 * time.Second})
	require.NoError(t, err)
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err = pub.Publish(ctx, NewMessageSentEvent(1, "bob", "hi", 42))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorContains(t, err, "failed to publish message_sent event")
}

func TestNewPublisherRedisDriver(t *testing.T) {
	srv := miniredis.RunT(t)

	pub, err := NewPublisher(Config{Driver: "redis", Redis: RedisConfig{Address: srv.Addr()}})
	require.NoError(t, err)
	defer pub.Close()

	assert.IsType(t, &RedisPublisher{}, pub)
	require.NoError(t, pub.Publish(context.Background(), NewChatCreatedEvent(1, "Room1", "alice")))
}

func TestNewPublisherUnknownDriver(t *testing.T) {
	_, err := NewPublisher(Config{Driver: "nats"})
	assert.EqualError(t, err, "unsupported notify driver: nats")
}

func TestEventKey(t *testing.T) {
	assert.Equal(t, []byte("12"), eventKey(NewChatCreatedEvent(12, "", "alice")))
	assert.Equal(t, []byte("5"), eventKey(NewMessageSentEvent(5, "bob", "x", 1)))
}
