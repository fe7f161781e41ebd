package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/majesty-shop/internal/interface/http"
)

type CartModule struct {
	Handler *handlers.CartHandler
}

func NewCartModule(h *handlers.CartHandler) *CartModule {
	return &CartModule{Handler: h}
}

func (m *CartModule) Register(rg *gin.RouterGroup) {
	rg.GET("/cart", m.Handler.List)
	rg.POST("/cart/items", m.Handler.Add)
	rg.DELETE("/cart", m.Handler.Clear)
}
