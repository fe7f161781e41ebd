package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/majesty-shop/internal/interface/http"
	"github.com/oksasatya/majesty-shop/internal/interface/middleware"
)

// UserLimits configures the form limiters. A nil Redis disables them.
type UserLimits struct {
	Redis  *redis.Client
	Bypass bool // let private IPs through, for local development
}

// UserModule wires the register and login forms:
// POST /api/register, POST /api/login, GET /api/session
type UserModule struct {
	Handler *handlers.UserHandler
	Limits  UserLimits
}

func NewUserModule(h *handlers.UserHandler, limits UserLimits) *UserModule {
	return &UserModule{Handler: h, Limits: limits}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	var allow middleware.AllowFunc
	if m.Limits.Bypass {
		allow = middleware.AllowPrivateIP()
	}
	registerLimiter := middleware.RateLimit(m.Limits.Redis, 5, time.Minute, middleware.KeyByClient(), allow)  // 5 req/min per client
	loginLimiter := middleware.RateLimit(m.Limits.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), allow) // 10 req/min per IP

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.GET("/session", m.Handler.Session)
}
