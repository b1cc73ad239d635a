package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis builds the client behind the price-check cache and the quote email
// job queue. Connectivity is verified before the server starts accepting
// requests.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
