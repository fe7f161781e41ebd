package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/majesty-shop/internal/domain/repository"
)

// Storage keeps every scope in process memory. Used for KV_BACKEND=memory and tests.
type Storage struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewStorage() *Storage {
	return &Storage{data: make(map[string]map[string]string)}
}

func (s *Storage) Scope(clientID string) repository.KeyValueStore {
	return &scoped{s: s, scope: clientID}
}

type scoped struct {
	s     *Storage
	scope string
}

func (k *scoped) Get(_ context.Context, key string) (string, bool, error) {
	k.s.mu.RLock()
	defer k.s.mu.RUnlock()
	v, ok := k.s.data[k.scope][key]
	return v, ok, nil
}

func (k *scoped) Set(_ context.Context, key, value string) error {
	k.s.mu.Lock()
	defer k.s.mu.Unlock()
	m, ok := k.s.data[k.scope]
	if !ok {
		m = make(map[string]string)
		k.s.data[k.scope] = m
	}
	m[key] = value
	return nil
}

func (k *scoped) Remove(_ context.Context, key string) error {
	k.s.mu.Lock()
	defer k.s.mu.Unlock()
	delete(k.s.data[k.scope], key)
	return nil
}

var _ repository.Storage = (*Storage)(nil)
