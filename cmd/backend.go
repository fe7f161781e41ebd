package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/config"
	"github.com/oksasatya/majesty-shop/internal/domain/repository"
	"github.com/oksasatya/majesty-shop/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/majesty-shop/internal/infrastructure/postgres"
	redisinfra "github.com/oksasatya/majesty-shop/internal/infrastructure/redis"
	"github.com/oksasatya/majesty-shop/pkg/helpers"
)

// backend bundles the selected key-value storage with the connections it
// owns. Redis may be set for rate limiting even when it does not back storage.
type backend struct {
	Storage repository.Storage
	Redis   *redis.Client
	Pool    *pgxpool.Pool
}

func (b *backend) Close() {
	if b.Redis != nil {
		_ = b.Redis.Close()
	}
	if b.Pool != nil {
		b.Pool.Close()
	}
}

func openBackend(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*backend, error) {
	b := &backend{}

	if cfg.KVBackend == "redis" || cfg.RateLimitEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			_ = rdb.Close()
			if cfg.KVBackend == "redis" {
				return nil, fmt.Errorf("ping redis: %w", err)
			}
			logger.WithError(err).Warn("redis unavailable, rate limiting disabled")
		} else {
			b.Redis = rdb
		}
	}

	switch cfg.KVBackend {
	case "memory":
		b.Storage = memory.NewStorage()
	case "redis":
		b.Storage = redisinfra.NewStorage(b.Redis)
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Pool = pool
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			b.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		b.Storage = pginfra.NewStorage(pool)
	default:
		b.Close()
		return nil, fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
	}
	return b, nil
}
