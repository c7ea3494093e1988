package lockout

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "auth:lockout:"

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type RedisStore struct {
	client *redis.Client
	policy Policy
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, policy Policy) *RedisStore {
	return &RedisStore{client: client, policy: policy, now: time.Now}
}

func (s *RedisStore) LockedUntil(ctx context.Context, key string) (time.Time, error) {
	raw, err := s.client.HGet(ctx, keyPrefix+key, "locked_until").Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || unix <= 0 {
		return time.Time{}, nil
	}

	until := time.Unix(unix, 0)
	if !until.After(s.now()) {
		return time.Time{}, nil
	}
	return until, nil
}

func (s *RedisStore) RecordFailure(ctx context.Context, key string) error {
	redisKey := keyPrefix + key

	count, err := s.client.HIncrBy(ctx, redisKey, "failed_count", 1).Result()
	if err != nil {
		return err
	}

	if int(count) < s.policy.MaxFailures {
		if count == 1 {
			return s.client.Expire(ctx, redisKey, s.policy.Window).Err()
		}
		return nil
	}

	lockedUntil := s.now().Add(s.policy.LockFor)
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, redisKey, "locked_until", lockedUntil.Unix(), "failed_count", 0)
		p.Expire(ctx, redisKey, s.policy.LockFor)
		return nil
	})
	return err
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}

var _ Store = (*RedisStore)(nil)
