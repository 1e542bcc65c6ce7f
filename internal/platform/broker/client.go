// Package broker wraps the Redis Streams primitives the result pipeline is
// layered on: JSON batch publishing, consumer-group reads, and explicit
// acknowledgement. It deliberately exposes only the usage pattern the
// pipeline needs, not a general-purpose messaging abstraction.
package broker

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewClient creates a Redis client from a redis:// URL and verifies the
// connection with a ping.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
