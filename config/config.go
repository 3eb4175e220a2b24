package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const DefaultPort = 3000

// Config holds all application configuration
type Config struct {
	Port                   int
	LogLevel               string
	ShutdownTimeoutSeconds int
	AccessLog              AccessLogConfig
}

// AccessLogConfig holds settings for the optional access-log sinks.
// Every enabled sink gets its own batcher sized by the buffer settings.
type AccessLogConfig struct {
	BufferChannelCapacity int // capacity of each sink's record buffer channel
	BatchSize             int // number of records to batch before flushing
	FlushIntervalSeconds  int // time interval in seconds to flush batches
	ClickHouse            ClickHouseConfig
	Redis                 RedisConfig
}

// ClickHouseConfig holds ClickHouse connection settings
type ClickHouseConfig struct {
	Enabled                bool
	Host                   string
	Port                   string
	Database               string
	User                   string
	Password               string
	DSN                    string
	AsyncInsertEnabled     bool  // whether to use async inserts
	AsyncInsertWait        int   // wait_for_async_insert (0 or 1)
	AsyncInsertMaxDataSize int64 // async_insert_max_data_size in bytes
	AsyncInsertBusyTimeout int   // async_insert_busy_timeout_ms in milliseconds
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	Endpoint string
	Stream   string
	MaxLen   int64
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:                   getEnvAsInt("PORT", DefaultPort),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 10),
		AccessLog: AccessLogConfig{
			BufferChannelCapacity: getEnvAsInt("ACCESS_LOG_BUFFER_CAPACITY", 10000),
			BatchSize:             getEnvAsInt("ACCESS_LOG_BATCH_SIZE", 1000),
			FlushIntervalSeconds:  getEnvAsInt("ACCESS_LOG_FLUSH_INTERVAL_SECONDS", 1),
			ClickHouse: ClickHouseConfig{
				Enabled:                getEnv("ACCESS_LOG_CLICKHOUSE_ENABLED", "0") == "1",
				Host:                   getEnv("CLICKHOUSE_HOST", "127.0.0.1"),
				Port:                   getEnv("CLICKHOUSE_PORT", "9000"),
				Database:               getEnv("CLICKHOUSE_DATABASE", "default"),
				User:                   getEnv("CLICKHOUSE_USER", "default"),
				Password:               getEnv("CLICKHOUSE_PASSWORD", ""),
				DSN:                    getEnv("CLICKHOUSE_DSN", ""),
				AsyncInsertEnabled:     getEnv("CLICKHOUSE_ASYNC_INSERT_ENABLED", "1") == "1",
				AsyncInsertWait:        getEnvAsInt("CLICKHOUSE_ASYNC_INSERT_WAIT", 0),
				AsyncInsertMaxDataSize: getEnvAsInt64("CLICKHOUSE_ASYNC_INSERT_MAX_DATA_SIZE", 10485760),
				AsyncInsertBusyTimeout: getEnvAsInt("CLICKHOUSE_ASYNC_INSERT_BUSY_TIMEOUT", 200),
			},
			Redis: RedisConfig{
				Enabled:  getEnv("ACCESS_LOG_REDIS_ENABLED", "0") == "1",
				Host:     getEnv("REDIS_HOST", "127.0.0.1"),
				Port:     getEnv("REDIS_PORT", "6379"),
				Password: getEnv("REDIS_PASSWORD", ""),
				Endpoint: getEnv("REDIS_ENDPOINT", ""),
				Stream:   getEnv("ACCESS_LOG_REDIS_STREAM", "frontend:access_log"),
				MaxLen:   getEnvAsInt64("ACCESS_LOG_REDIS_MAXLEN", 10000),
			},
		},
	}
}

// ListenAddr is the address passed to the HTTP listener
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c *ClickHouseConfig) GetClickHouseDSN() string {
	if c.DSN != "" {
		return c.DSN
	}

	// Build DSN from components
	dsn := "clickhouse://"
	if c.User != "" {
		dsn += c.User
		if c.Password != "" {
			dsn += ":" + c.Password
		}
		dsn += "@"
	}
	dsn += c.Host + ":" + c.Port + "/" + c.Database

	if c.AsyncInsertEnabled {
		// async insert settings apply to every insert on this connection
		params := []string{
			fmt.Sprintf("wait_for_async_insert=%d", c.AsyncInsertWait),
			fmt.Sprintf("async_insert_max_data_size=%d", c.AsyncInsertMaxDataSize),
			fmt.Sprintf("async_insert_busy_timeout_ms=%d", c.AsyncInsertBusyTimeout),
		}
		dsn += "?" + strings.Join(params, "&")
	}

	return dsn
}

func (r *RedisConfig) GetRedisAddr() string {
	if r.Endpoint != "" {
		return r.Endpoint
	}
	return r.Host + ":" + r.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
