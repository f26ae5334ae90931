package redis

import (
	"context"
	"time"

	"ai-character-chat/backend/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Client wraps go-redis for the session cache and chat-history store.
type Client struct {
	rdb *redis.Client
}

// NewClient builds a client from injected configuration.
func NewClient(cfg *config.Config) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return &Client{rdb: rdb}
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Get returns the value for key, or ("", nil) when the key is absent.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *Client) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// RPush appends values to the list at key and refreshes its TTL.
func (c *Client) RPush(ctx context.Context, key string, ttl time.Duration, values ...interface{}) error {
	if err := c.rdb.RPush(ctx, key, values...).Err(); err != nil {
		return err
	}
	return c.rdb.Expire(ctx, key, ttl).Err()
}

// LRange returns up to the last n entries of the list at key.
func (c *Client) LRange(ctx context.Context, key string, n int64) ([]string, error) {
	return c.rdb.LRange(ctx, key, -n, -1).Result()
}

// Ping verifies the connection for health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
