// Package kvstore is the shared list+string-with-TTL protocol every other
// package in this module talks to: bounded queues (rpush/lrange/ltrim)
// and pool-metadata strings (set/setex/get/del/keys/mget). The production
// implementation is backed by Redis; tests use an in-memory fake that
// satisfies the same interface.
package kvstore

import (
	"context"
	"time"
)

// Store is the minimal surface the pipeline needs. It intentionally
// exposes Redis-shaped verbs rather than a generic KV abstraction: every
// caller in this module already thinks in terms of llen/rpush/lrange/ltrim
// and set/setex/get.
type Store interface {
	LLen(ctx context.Context, key string) (int64, error)
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LTrim(ctx context.Context, key string, start, stop int64) error

	Set(ctx context.Context, key, value string) error
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, key string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	MGet(ctx context.Context, keys ...string) ([]string, []bool, error)

	// Ping checks connectivity to the backing store, used by the
	// health-check endpoint.
	Ping(ctx context.Context) error
}
