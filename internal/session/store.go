package session

import (
	"context"
	"errors"
	"sync"

	"pelada-manager/pkg/redis"
)

// ErrNotFound is returned by Store.Get when a key has no value
var ErrNotFound = errors.New("session: key not found")

// Store persists session state under fixed keys. The web frontend kept these
// in browser local storage; headless deployments use Redis so repeated
// invocations share one session, and tests use the in-memory store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisStore persists session state in Redis with environment-prefixed keys
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get retrieves a value, translating missing keys to ErrNotFound
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.client.KeyBuilder.BuildKey(key))
	if err == redis.Nil {
		return "", ErrNotFound
	}
	return val, err
}

// Set stores a value without expiry; sessions live until sign-out
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.client.KeyBuilder.BuildKey(key), value, 0)
}

// Delete removes keys
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.client.KeyBuilder.BuildKey(key)
	}
	return s.client.Delete(ctx, prefixed...)
}

// MemoryStore is an in-process session store for one-shot runs and tests
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get retrieves a value, translating missing keys to ErrNotFound
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

// Set stores a value
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes keys
func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}
