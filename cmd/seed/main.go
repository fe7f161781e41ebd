package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/oksasatya/majesty-shop/config"
	"github.com/oksasatya/majesty-shop/internal/application"
	"github.com/oksasatya/majesty-shop/internal/domain/repository"
	pginfra "github.com/oksasatya/majesty-shop/internal/infrastructure/postgres"
	redisinfra "github.com/oksasatya/majesty-shop/internal/infrastructure/redis"
	"github.com/oksasatya/majesty-shop/pkg/helpers"
)

// seed registers a demo shopper inside one client scope so the login form can
// be tried right away. Pass the browser's client_id cookie value with -client;
// without it a new scope is created and printed.
func main() {
	clientFlag := flag.String("client", "", "client_id cookie value (uuid) to seed; empty creates a new scope")
	flag.Parse()

	clientID, err := resolveClientID(*clientFlag)
	if err != nil {
		log.Fatalf("invalid -client: %v", err)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	var storage repository.Storage
	switch cfg.KVBackend {
	case "redis":
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		storage = redisinfra.NewStorage(rdb)
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		storage = pginfra.NewStorage(pool)
	default:
		log.Fatalf("seeding needs a persistent backend, KV_BACKEND=%q", cfg.KVBackend)
	}

	svc := application.NewUserService(storage, nil, logger, cfg.LoginRedirectURL, cfg.LoginRedirectDelay)
	email, password := "demo@majesty.shop", "password123"
	_, err = svc.Register(ctx, clientID, application.RegistrationInput{
		Name:           "Demo",
		LastName:       "User",
		Email:          email,
		Password:       password,
		RepeatPassword: password,
		TermsAccepted:  true,
	})
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr) && verr.Fields["email"] != "" && len(verr.Fields) == 1:
		fmt.Printf("user already seeded in scope %s: email=%s\n", clientID, email)
		return
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user in scope %s: email=%s password=%s\n", clientID, email, password)
	fmt.Printf("set the browser cookie %s=%s to use it\n", helpers.ClientCookie, clientID)
}

// resolveClientID accepts only scopes the client_id cookie can carry.
func resolveClientID(v string) (string, error) {
	if v == "" {
		return uuid.NewString(), nil
	}
	if err := uuid.Validate(v); err != nil {
		return "", fmt.Errorf("%q is not a uuid: %w", v, err)
	}
	return v, nil
}
