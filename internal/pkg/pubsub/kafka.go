package pubsub

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"tush00nka/group_chat/internal/pkg/logging"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const defaultKafkaMessageTimeout = 10 * time.Second

// KafkaPublisher produces events to the fixed topic, keyed by chat id so one
// chat's events stay ordered within a partition.
type KafkaPublisher struct {
	producer *kafka.Producer
	doneCh   chan struct{}
}

func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	timeout := cfg.MessageTimeout
	if timeout <= 0 {
		timeout = defaultKafkaMessageTimeout
	}

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Brokers,
		"acks":               "1",
		"linger.ms":          5,
		"message.timeout.ms": int(timeout.Milliseconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	kp := &KafkaPublisher{
		producer: p,
		doneCh:   make(chan struct{}),
	}
	go kp.deliveryReportHandler()

	return kp, nil
}

// deliveryReportHandler drains producer-level events. Delivery reports for
// published messages go to the per-call channel in Publish.
func (k *KafkaPublisher) deliveryReportHandler() {
	logger := logging.L()
	for e := range k.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				logger.Warn().Err(ev.TopicPartition.Error).Str("topic", Channel).Msg("kafka delivery failed")
			}
		case kafka.Error:
			logger.Warn().Err(ev).Str("topic", Channel).Msg("kafka producer error")
		}
	}
	close(k.doneCh)
}

func (k *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	data, err := encode(event)
	if err != nil {
		return err
	}

	topic := Channel
	// buffered so a report arriving after ctx is done never blocks the poller
	deliveryCh := make(chan kafka.Event, 1)
	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Key:   eventKey(event),
		Value: data,
	}, deliveryCh)
	if err != nil {
		return fmt.Errorf("failed to produce %s event: %w", event.EventType(), err)
	}

	// waits for the broker ack only, never for a consumer
	select {
	case e := <-deliveryCh:
		if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
			return fmt.Errorf("failed to publish %s event: %w", event.EventType(), m.TopicPartition.Error)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to publish %s event: %w", event.EventType(), ctx.Err())
	}
}

func (k *KafkaPublisher) Close() error {
	if remaining := k.producer.Flush(5000); remaining > 0 {
		k.producer.Purge(kafka.PurgeQueue | kafka.PurgeInFlight)
	}
	k.producer.Close()
	<-k.doneCh
	return nil
}

func eventKey(event Event) []byte {
	switch e := event.(type) {
	case *ChatCreatedEvent:
		return []byte(strconv.FormatUint(uint64(e.ChatID), 10))
	case *MessageSentEvent:
		return []byte(strconv.FormatUint(uint64(e.ChatID), 10))
	default:
		return nil
	}
}
