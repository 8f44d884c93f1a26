package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sentimentform/internal/domain"
)

const keyPrefix = "sentiment:"

// kv is the subset of go-redis used by the cache.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Client caches classifier results keyed by model and text digest.
type Client struct {
	rdb    kv
	closer func() error
	ttl    time.Duration
}

func New(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	return &Client{rdb: rdb, closer: rdb.Close, ttl: ttl}, nil
}

func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

func (c *Client) Get(ctx context.Context, key string) (*domain.Sentiment, error) {
	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s domain.Sentiment
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode cached sentiment: %w", err)
	}
	return &s, nil
}

// Set stores s with the configured TTL; zero means no expiry.
func (c *Client) Set(ctx context.Context, key string, s domain.Sentiment) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+key, data, c.ttl).Err()
}
