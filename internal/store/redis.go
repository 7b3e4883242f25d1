package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces lawlens keys in a shared Redis.
const DefaultRedisPrefix = "lawlens:"

// RedisBlob stores values in Redis under prefix+key, without expiry.
type RedisBlob struct {
	client *redis.Client
	prefix string
}

// NewRedisBlob connects to redisURL and checks the connection.
func NewRedisBlob(redisURL, prefix string) (*RedisBlob, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisBlobWithClient(client, prefix), nil
}

// NewRedisBlobWithClient wraps an existing client.
func NewRedisBlobWithClient(client *redis.Client, prefix string) *RedisBlob {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisBlob{client: client, prefix: prefix}
}

func (r *RedisBlob) key(k string) string {
	return r.prefix + k
}

func (r *RedisBlob) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

func (r *RedisBlob) Set(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (r *RedisBlob) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (r *RedisBlob) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisBlob) Close() error {
	return r.client.Close()
}
