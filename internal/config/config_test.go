package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeEnv(t, `DB_HOST=db
DB_USER=chat
DB_PASSWORD=secret
DB_NAME=chat
DB_PORT=5432
SERVER_PORT=9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "redis", cfg.NotifyDriver)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 100, cfg.MaxOpenConns)
	assert.Equal(t, "host=db user=chat password=secret dbname=chat port=5432 sslmode=disable", cfg.DSN())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeEnv(t, "DB_DRIVER=sqlite\nDB_PATH=file.db\n")
	t.Setenv("DB_PATH", "/tmp/chat.db")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/chat.db", cfg.DSN())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.LogPretty)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", ":memory:")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		env  string
		want string
	}{
		{"postgres without user", "DB_HOST=db\n", "DB_USER is required"},
		{"postgres without host", "DB_USER=u\nDB_PASSWORD=p\nDB_NAME=n\nDB_PORT=1\n", "DB_HOST is required"},
		{"sqlite without path", "DB_DRIVER=sqlite\n", "DB_PATH is required"},
		{"unknown driver", "DB_DRIVER=oracle\n", "unsupported DB_DRIVER: oracle"},
		{"kafka without brokers", "DB_DRIVER=sqlite\nDB_PATH=x\nNOTIFY_DRIVER=kafka\n", "KAFKA_BROKERS is required"},
		{"kafka without timeout", "DB_DRIVER=sqlite\nDB_PATH=x\nNOTIFY_DRIVER=kafka\nKAFKA_BROKERS=k:9092\nKAFKA_MESSAGE_TIMEOUT=0s\n", "KAFKA_MESSAGE_TIMEOUT must be positive"},
		{"unknown notify driver", "DB_DRIVER=sqlite\nDB_PATH=x\nNOTIFY_DRIVER=nats\n", "unsupported NOTIFY_DRIVER: nats"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeEnv(t, tc.env))
			assert.EqualError(t, err, tc.want)
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", Host: "db", User: "u", Password: "p", Name: "chat", DBPort: "3306"}
	assert.Equal(t, "u:p@tcp(db:3306)/chat?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())
}

func TestLoadKafkaSettings(t *testing.T) {
	path := writeEnv(t, "DB_DRIVER=sqlite\nDB_PATH=x\nNOTIFY_DRIVER=kafka\nKAFKA_BROKERS=k1:9092,k2:9092\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "k1:9092,k2:9092", cfg.KafkaBrokers)
	assert.Equal(t, 10*time.Second, cfg.KafkaMessageTimeout)

	t.Setenv("KAFKA_MESSAGE_TIMEOUT", "750ms")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.KafkaMessageTimeout)
}
