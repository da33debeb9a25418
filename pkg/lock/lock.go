package lock

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrNotAcquired = errors.New("lock not acquired")

// Locker serializes work on a key across service instances.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// NopLocker is used when redis is disabled; the database unique index still prevents duplicates.
type NopLocker struct{}

func (NopLocker) Acquire(ctx context.Context, key string) (func(), error) {
	return func() {}, nil
}

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client  *redis.Client
	ttl     time.Duration
	retry   time.Duration
	timeout time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client:  client,
		ttl:     10 * time.Second,
		retry:   50 * time.Millisecond,
		timeout: 3 * time.Second,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.New().String()
	deadline := time.Now().Add(l.timeout)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				releaseScript.Run(context.Background(), l.client, []string{key}, token)
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrNotAcquired
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

func EnrollKey(userID, courseID string) string {
	return "lms:lock:enroll:" + userID + ":" + courseID
}
