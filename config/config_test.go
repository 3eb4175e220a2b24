package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ACCESS_LOG_CLICKHOUSE_ENABLED", "")
	t.Setenv("ACCESS_LOG_REDIS_ENABLED", "")

	cfg := Load()

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.ListenAddr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.AccessLog.ClickHouse.Enabled)
	assert.False(t, cfg.AccessLog.Redis.Enabled)
	assert.Equal(t, "frontend:access_log", cfg.AccessLog.Redis.Stream)
}

func TestLoadPort(t *testing.T) {
	t.Setenv("PORT", "8080")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.ListenAddr())
}

func TestLoadInvalidPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "http")

	assert.Equal(t, DefaultPort, Load().Port)
}

func TestLoadAccessLogSinks(t *testing.T) {
	t.Setenv("ACCESS_LOG_CLICKHOUSE_ENABLED", "1")
	t.Setenv("ACCESS_LOG_REDIS_ENABLED", "1")
	t.Setenv("ACCESS_LOG_BATCH_SIZE", "50")
	t.Setenv("ACCESS_LOG_REDIS_MAXLEN", "not-a-number")

	cfg := Load()

	assert.True(t, cfg.AccessLog.ClickHouse.Enabled)
	assert.True(t, cfg.AccessLog.Redis.Enabled)
	assert.Equal(t, 50, cfg.AccessLog.BatchSize)
	assert.Equal(t, int64(10000), cfg.AccessLog.Redis.MaxLen)
}

func TestGetClickHouseDSN(t *testing.T) {
	cfg := ClickHouseConfig{
		Host:     "ch",
		Port:     "9000",
		Database: "logs",
		User:     "app",
		Password: "secret",
	}
	assert.Equal(t, "clickhouse://app:secret@ch:9000/logs", cfg.GetClickHouseDSN())

	cfg.AsyncInsertEnabled = true
	cfg.AsyncInsertWait = 1
	cfg.AsyncInsertMaxDataSize = 1024
	cfg.AsyncInsertBusyTimeout = 200
	assert.Equal(t,
		"clickhouse://app:secret@ch:9000/logs?wait_for_async_insert=1&async_insert_max_data_size=1024&async_insert_busy_timeout_ms=200",
		cfg.GetClickHouseDSN())

	cfg.DSN = "clickhouse://override:9000/x"
	assert.Equal(t, "clickhouse://override:9000/x", cfg.GetClickHouseDSN())
}

func TestGetRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "redis", Port: "6380"}
	assert.Equal(t, "redis:6380", cfg.GetRedisAddr())

	cfg.Endpoint = "cache.internal:6379"
	assert.Equal(t, "cache.internal:6379", cfg.GetRedisAddr())
}
