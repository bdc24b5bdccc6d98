package pubsub

import (
	"fmt"
	"time"
)

// Config selects and configures the broker driver.
type Config struct {
	Driver string // "redis", "kafka"
	Redis  RedisConfig
	Kafka  KafkaConfig
}

type RedisConfig struct {
	Address      string
	Password     string
	DB           int
	PoolSize     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type KafkaConfig struct {
	Brokers string
	// MessageTimeout bounds how long a message may wait for a broker ack.
	MessageTimeout time.Duration
}

// NewPublisher connects to the broker named by cfg.Driver.
func NewPublisher(cfg Config) (Publisher, error) {
	switch cfg.Driver {
	case "", "redis":
		return NewRedisPublisher(cfg.Redis)
	case "kafka":
		return NewKafkaPublisher(cfg.Kafka)
	default:
		return nil, fmt.Errorf("unsupported notify driver: %s", cfg.Driver)
	}
}
