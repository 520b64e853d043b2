package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisConnectTimeout = 5 * time.Second

// redisStore implements a Store on redis keys with native expiry.
type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func openRedis(ctx context.Context, opts Options) (Store, error) {
	addr := strings.TrimSpace(opts.RedisAddr)
	if addr == "" {
		return nil, errors.New("redis storage requires an address")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisStore{client: client, prefix: opts.RedisPrefix, ttl: opts.ArticleTTL}, nil
}

func (r *redisStore) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *redisStore) SeenArticle(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (r *redisStore) MarkArticle(ctx context.Context, key string) error {
	if err := r.client.Set(ctx, r.prefix+key, 1, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
