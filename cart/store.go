package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store persists full-cart snapshots keyed by owner. Every mutation writes
// the whole cart back, last writer wins; there is no cross-device merge.
type Store interface {
	Load(ctx context.Context, owner string) (*Cart, error)
	Save(ctx context.Context, owner string, c *Cart) error
	Delete(ctx context.Context, owner string) error
}

func cartKey(owner string) string {
	return fmt.Sprintf("cart:%s", owner)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, owner string) (*Cart, error) {
	data, err := s.client.Get(ctx, cartKey(owner)).Result()
	if err == redis.Nil {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c := New()
	if err := json.Unmarshal([]byte(data), c); err != nil {
		// Corrupt snapshot; start the owner over with an empty cart.
		return New(), nil
	}
	return c, nil
}

func (s *RedisStore) Save(ctx context.Context, owner string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(owner), string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, owner string) error {
	return s.client.Del(ctx, cartKey(owner)).Err()
}

// MemoryStore keeps snapshots in process memory. Used in tests and when the
// service runs without Redis.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, owner string) (*Cart, error) {
	s.mu.RLock()
	data, ok := s.carts[owner]
	s.mu.RUnlock()

	if !ok {
		return New(), nil
	}

	c := New()
	if err := json.Unmarshal(data, c); err != nil {
		return New(), nil
	}
	return c, nil
}

func (s *MemoryStore) Save(ctx context.Context, owner string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.carts[owner] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, owner string) error {
	s.mu.Lock()
	delete(s.carts, owner)
	s.mu.Unlock()
	return nil
}
