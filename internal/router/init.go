package router

import (
	"github.com/oksasatya/majesty-shop/internal/application"
	"github.com/oksasatya/majesty-shop/internal/container"
	handlers "github.com/oksasatya/majesty-shop/internal/interface/http"
	"github.com/oksasatya/majesty-shop/internal/router/modules"
)

type ShopModuleDeps struct {
	Catalog *handlers.CatalogHandler
	Cart    *handlers.CartHandler
	User    *handlers.UserHandler
}

func buildShopDeps() ShopModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	storage := container.GetStorage()

	catalogSvc := application.NewCatalogService(
		container.GetProductSource(),
		application.NewCardRenderer(logger),
		cfg.CatalogPageSize,
		logger,
	)
	catalogSvc.IdleTTL = cfg.CatalogIdleTTL
	catalogSvc.MaxClients = cfg.CatalogMaxClients
	cartSvc := application.NewCartService(storage, logger)
	userSvc := application.NewUserService(
		storage,
		container.GetValidator(),
		logger,
		cfg.LoginRedirectURL,
		cfg.LoginRedirectDelay,
	)

	return ShopModuleDeps{
		Catalog: handlers.NewCatalogHandler(catalogSvc, logger),
		Cart:    handlers.NewCartHandler(cartSvc, logger),
		User:    handlers.NewUserHandler(userSvc, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	deps := buildShopDeps()

	r.Add(modules.NewCatalogModule(deps.Catalog))
	r.Add(modules.NewCartModule(deps.Cart))

	limits := modules.UserLimits{}
	if cfg.RateLimitEnabled {
		limits.Redis = container.GetRedis()
		if cfg.Env == "development" {
			limits.Bypass = true
		}
	}
	r.Add(modules.NewUserModule(deps.User, limits))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetRedis()))
	}
}
