package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	DBDriver     string `mapstructure:"DB_DRIVER"`
	Host         string `mapstructure:"DB_HOST"`
	User         string `mapstructure:"DB_USER"`
	Password     string `mapstructure:"DB_PASSWORD"`
	Name         string `mapstructure:"DB_NAME"`
	DBPort       string `mapstructure:"DB_PORT"`
	SSLMode      string `mapstructure:"DB_SSLMODE"`
	DBPath       string `mapstructure:"DB_PATH"`
	MaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	MaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`

	NotifyDriver  string `mapstructure:"NOTIFY_DRIVER"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	KafkaBrokers  string `mapstructure:"KAFKA_BROKERS"`

	KafkaMessageTimeout time.Duration `mapstructure:"KAFKA_MESSAGE_TIMEOUT"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`
}

var defaults = map[string]any{
	"SERVER_PORT":           "8080",
	"DB_DRIVER":             "postgres",
	"DB_HOST":               "",
	"DB_USER":               "",
	"DB_PASSWORD":           "",
	"DB_NAME":               "",
	"DB_PORT":               "",
	"DB_SSLMODE":            "disable",
	"DB_PATH":               "",
	"DB_MAX_IDLE_CONNS":     10,
	"DB_MAX_OPEN_CONNS":     100,
	"NOTIFY_DRIVER":         "redis",
	"REDIS_ADDR":            "localhost:6379",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"KAFKA_BROKERS":         "",
	"KAFKA_MESSAGE_TIMEOUT": "10s",
	"LOG_LEVEL":             "info",
	"LOG_PRETTY":            false,
}

// Load reads configuration from the given .env file, if present, and the
// environment. Environment variables win over the file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ".env"
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "mysql":
		if c.User == "" {
			return fmt.Errorf("DB_USER is required")
		}
		if c.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
		if c.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
		if c.DBPort == "" {
			return fmt.Errorf("DB_PORT is required")
		}
		if c.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	switch c.NotifyDriver {
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}
	case "kafka":
		if c.KafkaBrokers == "" {
			return fmt.Errorf("KAFKA_BROKERS is required")
		}
		if c.KafkaMessageTimeout <= 0 {
			return fmt.Errorf("KAFKA_MESSAGE_TIMEOUT must be positive")
		}
	default:
		return fmt.Errorf("unsupported NOTIFY_DRIVER: %s", c.NotifyDriver)
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	return nil
}

// DSN builds the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, c.DBPort, c.Name)
	case "sqlite":
		return c.DBPath
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.DBPort, c.SSLMode)
	}
}
