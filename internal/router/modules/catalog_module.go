package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/majesty-shop/internal/interface/http"
)

// CatalogModule serves the paginated product page:
// GET /api/catalog, POST /api/catalog/load, POST /api/catalog/more,
// POST /api/catalog/cards/:id/image-error
type CatalogModule struct {
	Handler *handlers.CatalogHandler
}

func NewCatalogModule(h *handlers.CatalogHandler) *CatalogModule {
	return &CatalogModule{Handler: h}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/catalog")
	g.GET("", m.Handler.Get)
	g.POST("/load", m.Handler.Load)
	g.POST("/more", m.Handler.More)
	g.POST("/cards/:id/image-error", m.Handler.ImageError)
}
