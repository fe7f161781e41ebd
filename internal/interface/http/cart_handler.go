package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/internal/application"
	"github.com/oksasatya/majesty-shop/internal/domain/entity"
	"github.com/oksasatya/majesty-shop/internal/interface/middleware"
	"github.com/oksasatya/majesty-shop/pkg/response"
)

type CartHandler struct {
	Svc    *application.CartService
	Logger *logrus.Logger
}

func NewCartHandler(svc *application.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Svc: svc, Logger: logger}
}

type cartView struct {
	Items []entity.CartItem `json:"items"`
	Lines []string          `json:"lines"`
	Count int               `json:"count"`
}

func newCartView(items []entity.CartItem) cartView {
	v := cartView{Items: items, Lines: make([]string, 0, len(items)), Count: len(items)}
	if v.Items == nil {
		v.Items = []entity.CartItem{}
	}
	for _, it := range items {
		v.Lines = append(v.Lines, it.Line())
	}
	return v
}

func (h *CartHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newCartView(items), "cart", nil)
}

func (h *CartHandler) Add(c *gin.Context) {
	var req application.AddCartItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if req.Price.IsNegative() {
		writeError(c, h.Logger, &application.ValidationError{
			Fields:  map[string]string{"price": "must be greater than or equal to 0"},
			Message: "invalid cart item",
		})
		return
	}
	items, err := h.Svc.Add(c.Request.Context(), middleware.ClientID(c), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, newCartView(items), "Product added to cart!", nil)
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context(), middleware.ClientID(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newCartView(nil), "cart cleared", nil)
}
