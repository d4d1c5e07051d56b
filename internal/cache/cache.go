// Package cache provides the short-lived result cache fronting the
// synchronous search path. It is a burst-absorption cache, not a
// correctness cache: the TTL is on the order of one second and callers
// must tolerate a just-prior result from the same user.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when no live entry exists for the key.
var ErrCacheMiss = errors.New("cache miss")

type ResultCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
