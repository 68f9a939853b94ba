package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessions keeps session entries in redis so they survive web app
// restarts and browser reloads alike.
type RedisSessions struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessions returns a redis-backed session factory.
func NewRedisSessions(client *redis.Client, ttl time.Duration) *RedisSessions {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessions{client: client, ttl: ttl}
}

// Scope binds the store to one tab session id.
func (s *RedisSessions) Scope(sid string) Store {
	return &redisScope{client: s.client, ttl: s.ttl, sid: sid}
}

type redisScope struct {
	client *redis.Client
	ttl    time.Duration
	sid    string
}

func (s *redisScope) key(key string) string {
	return fmt.Sprintf("billed:session:%s:%s", s.sid, key)
}

func (s *redisScope) GetItem(ctx context.Context, key string) (string, error) {
	result, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoItem
		}
		return "", err
	}
	return result, nil
}

func (s *redisScope) SetItem(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, s.ttl).Err()
}

func (s *redisScope) RemoveItem(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}
