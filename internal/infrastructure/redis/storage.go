package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/oksasatya/majesty-shop/internal/domain/repository"
)

// Storage keeps each client scope under kv:<scope>:<key> with no expiry.
type Storage struct {
	client *goredis.Client
}

func NewStorage(client *goredis.Client) *Storage {
	return &Storage{client: client}
}

func (s *Storage) Scope(clientID string) repository.KeyValueStore {
	return &scoped{client: s.client, scope: clientID}
}

type scoped struct {
	client *goredis.Client
	scope  string
}

func (k *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := k.client.Get(ctx, storageKey(k.scope, key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get failed: %w", err)
	}
	return v, true, nil
}

func (k *scoped) Set(ctx context.Context, key, value string) error {
	if err := k.client.Set(ctx, storageKey(k.scope, key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (k *scoped) Remove(ctx context.Context, key string) error {
	if err := k.client.Del(ctx, storageKey(k.scope, key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func storageKey(scope, key string) string {
	return fmt.Sprintf("kv:%s:%s", scope, key)
}

var _ repository.Storage = (*Storage)(nil)
