package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ConnectRedis configures a Redis client using the supplied URL.
func ConnectRedis(url string) (*redis.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url must not be empty")
	}

	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(options)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to redis: %w", err)
	}

	return client, nil
}

// OptionalRedis connects when a URL is configured and returns nil otherwise,
// logging the failure instead of aborting startup. Callers treat a nil client
// as "no cache".
func OptionalRedis(url string, logger zerolog.Logger) *redis.Client {
	if url == "" {
		return nil
	}

	client, err := ConnectRedis(url)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, continuing without cache")
		return nil
	}
	return client
}
