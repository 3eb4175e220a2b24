package database

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"techcommerce/frontend/config"
	"techcommerce/frontend/domain"
)

// RedisStream appends access records to a capped Redis stream
type RedisStream struct {
	*redis.Client
	stream string
	maxLen int64
}

// InitRedis initializes the Redis client connection
func InitRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Password,
		DB:       0, // default DB
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRedisStream(client *redis.Client, stream string, maxLen int64) RedisStream {
	return RedisStream{Client: client, stream: stream, maxLen: maxLen}
}

// SaveAccessRecords appends one stream entry per record in a single pipeline.
// The stream is trimmed approximately to maxLen.
func (r RedisStream) SaveAccessRecords(ctx context.Context, records []domain.AccessRecord) error {
	if len(records) == 0 {
		return nil
	}

	pipe := r.Pipeline()
	for _, record := range records {
		pipe.XAdd(ctx, r.xAddArgs(record))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append %d records to stream %s: %w", len(records), r.stream, err)
	}
	return nil
}

func (r RedisStream) xAddArgs(record domain.AccessRecord) *redis.XAddArgs {
	args := &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]any{
			"service":     domain.ServiceName,
			"method":      record.Method,
			"path":        record.Path,
			"status":      strconv.Itoa(record.Status),
			"duration_us": strconv.FormatInt(record.Duration.Microseconds(), 10),
			"time":        domain.FormatTimestamp(record.Time),
		},
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}
	return args
}
