package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/songzhibin97/chainpulse/internal/data"
)

const redisPrefix = "chainpulse:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Get implements data.KVStore
func (s *RedisStore) Get(ctx context.Context, key string, shared bool) (string, error) {
	value, err := s.client.Get(ctx, redisPrefix+scopedKey(key, shared)).Result()
	if errors.Is(err, redis.Nil) {
		return "", data.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key %s from redis: %w", key, err)
	}

	return value, nil
}

// Set implements data.KVStore. Values never expire.
func (s *RedisStore) Set(ctx context.Context, key, value string, shared bool) error {
	if err := s.client.Set(ctx, redisPrefix+scopedKey(key, shared), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}
	return nil
}

// Delete implements data.KVStore
func (s *RedisStore) Delete(ctx context.Context, key string, shared bool) error {
	if err := s.client.Del(ctx, redisPrefix+scopedKey(key, shared)).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
