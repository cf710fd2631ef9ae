package client

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CacheClient is a byte cache. With no redis behind it every call is a miss or a no-op.
type CacheClient interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Enabled() bool
}

type redisCacheClient struct {
	rdb *redis.Client
}

func NewCacheClient(redisURL string) CacheClient {
	if redisURL == "" {
		logrus.Info("redis: no URL configured, caching disabled")
		return &redisCacheClient{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logrus.Warnf("redis: invalid URL, caching disabled: %v", err)
		return &redisCacheClient{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logrus.Warnf("redis: connection failed, caching disabled: %v", err)
		_ = rdb.Close()
		return &redisCacheClient{}
	}

	logrus.Info("redis: connected, caching enabled")
	return &redisCacheClient{rdb: rdb}
}

func (c *redisCacheClient) Enabled() bool {
	return c.rdb != nil
}

func (c *redisCacheClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.rdb == nil {
		return nil, false, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *redisCacheClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *redisCacheClient) Delete(ctx context.Context, keys ...string) error {
	if c.rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *redisCacheClient) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}
