package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/majesty-shop/internal/domain/repository"
)

// Storage keeps client scopes in the kv_entries table.
type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func (s *Storage) Scope(clientID string) repository.KeyValueStore {
	return &scoped{pool: s.pool, scope: clientID}
}

type scoped struct {
	pool  *pgxpool.Pool
	scope string
}

func (k *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := k.pool.QueryRow(ctx, `
		SELECT value
		FROM kv_entries
		WHERE scope = $1 AND key = $2
	`, k.scope, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select kv entry: %w", err)
	}
	return v, true, nil
}

func (k *scoped) Set(ctx context.Context, key, value string) error {
	_, err := k.pool.Exec(ctx, `
		INSERT INTO kv_entries (scope, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (scope, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, k.scope, key, value)
	if err != nil {
		return fmt.Errorf("upsert kv entry: %w", err)
	}
	return nil
}

func (k *scoped) Remove(ctx context.Context, key string) error {
	if _, err := k.pool.Exec(ctx, `DELETE FROM kv_entries WHERE scope = $1 AND key = $2`, k.scope, key); err != nil {
		return fmt.Errorf("delete kv entry: %w", err)
	}
	return nil
}

var _ repository.Storage = (*Storage)(nil)
