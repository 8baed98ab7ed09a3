package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/songzhibin97/chainpulse/internal/configs"
	"github.com/songzhibin97/chainpulse/internal/data"
)

// scopedKey keeps shared keys as-is and namespaces per-instance ones.
func scopedKey(key string, shared bool) string {
	if shared {
		return key
	}
	return "local:" + key
}

// New 根据配置创建存储
func New(cfg configs.StorageConfig) (data.KVStore, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(cfg.Address, cfg.Password, cfg.DB)
	case "postgres":
		return NewPostgresStore(cfg.ConnStr)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string, shared bool) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[scopedKey(key, shared)]
	if !ok {
		return "", data.ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string, shared bool) error {
	s.mu.Lock()
	s.data[scopedKey(key, shared)] = value
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string, shared bool) error {
	s.mu.Lock()
	delete(s.data, scopedKey(key, shared))
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
