// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taibuivan/digideck/internal/platform/constants"
)

// RedisLocalStore implements LocalStore on Redis strings under [constants.RedisPrefixDeck].
type RedisLocalStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocalStore creates a store whose slots expire ttl after their last write.
// A non-positive ttl keeps slots forever.
func NewRedisLocalStore(client *redis.Client, ttl time.Duration) *RedisLocalStore {
	return &RedisLocalStore{client: client, ttl: ttl}
}

/*
Get reads one slot.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - []byte: Stored deck
  - bool: False when the key does not exist
  - error: Connectivity errors
*/
func (store *RedisLocalStore) Get(context context.Context, key string) ([]byte, bool, error) {
	value, err := store.client.Get(context, constants.RedisPrefixDeck+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_deck_get_failed: %w", err)
	}

	return value, true, nil
}

// Set overwrites one slot and refreshes its expiry.
func (store *RedisLocalStore) Set(context context.Context, key string, value []byte) error {
	ttl := store.ttl
	if ttl < 0 {
		ttl = 0
	}

	if err := store.client.Set(context, constants.RedisPrefixDeck+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis_deck_set_failed: %w", err)
	}

	return nil
}
