// Package redisstore implements storage.CacheStore on top of redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"recruit-api/internal/storage"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "recruit:"

// Store keeps settings, verification codes and revoked token ids in redis.
type Store struct {
	rdb redis.UniversalClient
}

// New wraps an existing client.
func New(rdb redis.UniversalClient) *Store {
	return &Store{rdb: rdb}
}

var _ storage.CacheStore = (*Store)(nil)

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		log.Printf("Redis GET %s failed: %v", key, err)
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return val, nil
}

// Set stores value; a zero ttl keeps the key forever.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		log.Printf("Redis SET %s failed: %v", key, err)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		log.Printf("Redis DEL %s failed: %v", key, err)
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
