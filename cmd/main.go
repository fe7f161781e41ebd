package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/majesty-shop/config"
	"github.com/oksasatya/majesty-shop/internal/container"
	"github.com/oksasatya/majesty-shop/internal/infrastructure/catalog"
	"github.com/oksasatya/majesty-shop/internal/interface/middleware"
	"github.com/oksasatya/majesty-shop/internal/router"
	"github.com/oksasatya/majesty-shop/pkg/helpers"
	"github.com/oksasatya/majesty-shop/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	store, err := openBackend(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open %s storage: %v", cfg.KVBackend, err)
	}
	defer store.Close()

	products := catalog.NewClient(catalog.Options{
		URL:            cfg.CatalogURL,
		MaxAttempts:    cfg.CatalogMaxAttempts,
		RetryBase:      cfg.CatalogRetryBase,
		Timeout:        cfg.CatalogTimeout,
		BreakerTimeout: cfg.CatalogBreakerTimeout,
	}, logger)

	// Gin binding and the form validator share tag names and aliases
	validation.Init()

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(store.Redis)
	container.SetStorage(store.Storage)
	container.SetProductSource(products)
	container.SetValidator(validation.New())

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "Refresh", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOriginFunc = func(string) bool { return cfg.Env == "development" }
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	reg.Use(middleware.ClientScope(helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)))
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.WithField("backend", cfg.KVBackend).Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
