package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/farm_management_app/internal/apperrors"
	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RedisLocker hands out short-lived Redis locks keyed by resource.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	retry  redislock.RetryStrategy
}

// NewRedisLocker creates a locker on rdb. A held lock expires after ttl even if never released.
func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		retry:  redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 3),
	}
}

var _ portssvc.Locker = (*RedisLocker)(nil)

// Obtain acquires the lock for key, retrying briefly before giving up with apperrors.ErrLocked.
func (l *RedisLocker) Obtain(ctx context.Context, key string) (portssvc.Unlocker, error) {
	lock, err := l.client.Obtain(ctx, "farm:lock:"+key, l.ttl, &redislock.Options{RetryStrategy: l.retry})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrLocked, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	return &redisUnlocker{lock: lock}, nil
}

type redisUnlocker struct {
	lock *redislock.Lock
}

// Release frees the lock. A lock that already expired is not an error.
func (u *redisUnlocker) Release(ctx context.Context) error {
	if err := u.lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return err
	}
	return nil
}
