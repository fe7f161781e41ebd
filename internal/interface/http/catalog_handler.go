package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/internal/application"
	"github.com/oksasatya/majesty-shop/internal/interface/middleware"
	"github.com/oksasatya/majesty-shop/pkg/response"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

func (h *CatalogHandler) controller(c *gin.Context) *application.CatalogController {
	return h.Svc.Controller(middleware.ClientID(c))
}

// Get returns the page as it stands, without fetching.
func (h *CatalogHandler) Get(c *gin.Context) {
	response.Success(c, http.StatusOK, h.controller(c).View(), "catalog", nil)
}

// Load fetches the product list and shows the first batch. A failed fetch is
// not an HTTP error: the page itself shows the error state.
func (h *CatalogHandler) Load(c *gin.Context) {
	view, err := h.controller(c).Start(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, view, string(view.State), nil)
}

func (h *CatalogHandler) More(c *gin.Context) {
	view, err := h.controller(c).LoadMore(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, view, "more products", nil)
}

// ImageError swaps a card's image for its placeholder. The id is either the
// card's element id or the bare product id.
func (h *CatalogHandler) ImageError(c *gin.Context) {
	id := c.Param("id")
	if !strings.HasPrefix(id, "product-") {
		id = "product-" + id
	}
	card, err := h.controller(c).ImageFailed(id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, card, "image replaced", nil)
}
