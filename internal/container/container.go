package container

import (
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/config"
	"github.com/oksasatya/majesty-shop/internal/application"
	"github.com/oksasatya/majesty-shop/internal/domain/repository"
	"github.com/oksasatya/majesty-shop/pkg/validation"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client

	storage  repository.Storage
	products application.ProductSource
	validate *validator.Validate
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

// SetRedis may be left unset when the memory or postgres backend runs
// without redis; rate limiting is then disabled.
func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetStorage(s repository.Storage) { storage = s }
func GetStorage() repository.Storage  { return storage }

func SetProductSource(p application.ProductSource) { products = p }
func GetProductSource() application.ProductSource  { return products }

func SetValidator(v *validator.Validate) { validate = v }
func GetValidator() *validator.Validate {
	if validate != nil {
		return validate
	}
	return validation.New()
}
