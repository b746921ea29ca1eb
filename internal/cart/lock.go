package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

const (
	defaultLockTTL  = 5 * time.Second
	defaultLockWait = 2 * time.Second
	lockPollEvery   = 25 * time.Millisecond
)

// Locker serializes cart mutations for one shopper so concurrent
// read-modify-write requests cannot silently overwrite each other.
type Locker interface {
	Acquire(ctx context.Context, userID string) (release func(), err error)
}

// lockStore defines the redis operations used by RedisLocker.
type lockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartLockKey(userID string) string
}

// RedisLocker implements Locker with SETNX + TTL, waiting briefly for a
// contended lock instead of failing fast.
type RedisLocker struct {
	store   lockStore
	ttl     time.Duration
	maxWait time.Duration
}

// NewRedisLocker constructs a redis-backed per-shopper locker.
func NewRedisLocker(store lockStore) (*RedisLocker, error) {
	if store == nil {
		return nil, errors.New("redis store required for cart lock")
	}
	return &RedisLocker{store: store, ttl: defaultLockTTL, maxWait: defaultLockWait}, nil
}

func (l *RedisLocker) Acquire(ctx context.Context, userID string) (func(), error) {
	key := l.store.CartLockKey(userID)
	owner := uuid.NewString()
	deadline := time.Now().Add(l.maxWait)

	for {
		ok, err := l.store.SetNX(ctx, key, owner, l.ttl)
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { l.release(key, owner) }, nil
		}
		if time.Now().After(deadline) {
			return nil, errors.New("cart is busy, lock wait exceeded")
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockPollEvery):
		}
	}
}

// release frees the lock only if the owner token still matches; an expired
// lock re-acquired by another request is left alone.
func (l *RedisLocker) release(key, owner string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	value, err := l.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return
		}
		return
	}
	if value != owner {
		return
	}
	_ = l.store.Del(ctx, key)
}

type noopLocker struct{}

func (noopLocker) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}
