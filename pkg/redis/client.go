// Package redis holds the process-wide Redis client. The only consumer is the
// idempotency layer, so the surface is limited to the string commands it
// needs: Get for replay lookups, SetNX for taking the processing lock, Set for
// storing a response, Del for releasing a slot.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

var client *redis.Client

// Init connects using a redis:// URL and verifies the connection with a ping.
// An explicit password overrides whatever the URL carries.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	client = c
	return nil
}

// SetClient swaps the package client. Tests use it to point at miniredis.
func SetClient(c *redis.Client) {
	client = c
}

func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return client.Set(ctx, key, value, ttl).Err()
}

// SetNX reports whether the key was newly set, i.e. whether this caller won
// the lock.
func SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, ttl).Result()
}

func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}
