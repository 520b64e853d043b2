package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Package storage remembers which articles the harvester already published.

// Store tracks published article keys. Keys are opaque; callers scope them by source.
type Store interface {
	Close() error
	SeenArticle(ctx context.Context, key string) (bool, error)
	MarkArticle(ctx context.Context, key string) error
}

// Supported storage backends.
const (
	TypeNone  = "none"
	TypeBBolt = "bbolt"
	TypeRedis = "redis"
)

// Options selects and tunes a concrete store implementation.
type Options struct {
	// BBoltPath is the database file for the bbolt backend.
	BBoltPath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// RedisPrefix namespaces keys in a shared redis.
	RedisPrefix string

	ArticleTTL      time.Duration
	CleanupInterval time.Duration
}

const (
	defaultArticleTTL      = 5 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
	defaultRedisPrefix     = "cryptonews:seen:"
)

// NewStore creates the configured storage backend.
func NewStore(ctx context.Context, typ string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", TypeNone, "disabled":
		return noopStore{}, nil
	case TypeBBolt:
		if strings.TrimSpace(opts.BBoltPath) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(opts.BBoltPath, opts)
	case TypeRedis:
		return openRedis(ctx, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.ArticleTTL <= 0 {
		opts.ArticleTTL = defaultArticleTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	if opts.RedisPrefix == "" {
		opts.RedisPrefix = defaultRedisPrefix
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                                      { return nil }
func (noopStore) SeenArticle(context.Context, string) (bool, error) { return false, nil }
func (noopStore) MarkArticle(context.Context, string) error         { return nil }
