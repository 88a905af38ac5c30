package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps refresh tokens in Redis so sessions survive server
// restarts. Expiry rides on the key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis at addr with the given token TTL.
func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{
		client: rdb,
		ttl:    ttl,
	}
}

// Ping verifies the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Save(ctx context.Context, token, userID string) error {
	return s.client.Set(ctx, keyPrefix+token, userID, s.ttl).Err()
}

func (s *RedisStore) Lookup(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}

func (s *RedisStore) Rotate(ctx context.Context, oldToken, newToken string) (string, error) {
	// GETDEL hands the stored user id to exactly one caller, so concurrent
	// replays of a spent token read as missing and fail the refresh.
	userID, err := s.client.GetDel(ctx, keyPrefix+oldToken).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, keyPrefix+newToken, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return userID, nil
}
