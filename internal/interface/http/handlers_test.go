package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/majesty-shop/internal/application"
	"github.com/oksasatya/majesty-shop/internal/domain/entity"
	"github.com/oksasatya/majesty-shop/internal/infrastructure/catalog"
	"github.com/oksasatya/majesty-shop/internal/infrastructure/memory"
	"github.com/oksasatya/majesty-shop/internal/interface/middleware"
	"github.com/oksasatya/majesty-shop/pkg/helpers"
	"github.com/oksasatya/majesty-shop/pkg/validation"
)

type stubSource struct {
	products []entity.Product
	err      error
}

func (s *stubSource) ListProducts(context.Context) ([]entity.Product, error) {
	return s.products, s.err
}

func products(n int) []entity.Product {
	out := make([]entity.Product, n)
	for i := range out {
		out[i] = entity.Product{
			ID:        int64(i + 1),
			Name:      "Liner",
			Price:     entity.NewPrice("7.00"),
			ImageLink: "https://img.test/liner.png",
		}
	}
	return out
}

type envelope struct {
	Status  int               `json:"status"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

type client struct {
	t      *testing.T
	engine *gin.Engine
	cookie *http.Cookie
}

func newClient(t *testing.T, src application.ProductSource) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	storage := memory.NewStorage()
	catalogH := NewCatalogHandler(application.NewCatalogService(src, application.NewCardRenderer(nil), 20, nil), nil)
	cartH := NewCartHandler(application.NewCartService(storage, nil), nil)
	userSvc := application.NewUserService(storage, nil, nil, "./index.html", 1500*time.Millisecond)
	userH := NewUserHandler(userSvc, nil)

	r := gin.New()
	api := r.Group("/api", middleware.RequestIDMiddleware(), middleware.ClientScope(helpers.NewCookie("", false)))
	api.GET("/catalog", catalogH.Get)
	api.POST("/catalog/load", catalogH.Load)
	api.POST("/catalog/more", catalogH.More)
	api.POST("/catalog/cards/:id/image-error", catalogH.ImageError)
	api.GET("/cart", cartH.List)
	api.POST("/cart/items", cartH.Add)
	api.DELETE("/cart", cartH.Clear)
	api.POST("/register", userH.Register)
	api.POST("/login", userH.Login)
	api.GET("/session", userH.Session)
	return &client{t: t, engine: r}
}

func (c *client) do(method, path, body string) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.ClientCookie {
			c.cookie = ck
		}
	}
	var env envelope
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestCatalog_LoadPagesAndEnds(t *testing.T) {
	c := newClient(t, &stubSource{products: products(25)})

	_, env := c.do(http.MethodGet, "/api/catalog", "")
	assert.Equal(t, application.StateIdle, decode[application.CatalogView](t, env.Data).State)

	w, env := c.do(http.MethodPost, "/api/catalog/load", "")
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[application.CatalogView](t, env.Data)
	assert.Equal(t, application.StatePopulated, view.State)
	assert.Len(t, view.Cards, 20)
	assert.True(t, view.LoadMore.Visible)

	_, env = c.do(http.MethodPost, "/api/catalog/more", "")
	view = decode[application.CatalogView](t, env.Data)
	assert.Len(t, view.Cards, 25)
	assert.True(t, view.EndOfResults)
	assert.False(t, view.LoadMore.Visible)

	w, env = c.do(http.MethodPost, "/api/catalog/more", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
}

func TestCatalog_FetchFailureIsErrorState(t *testing.T) {
	c := newClient(t, &stubSource{err: &catalog.FetchError{URL: "x", Attempts: 3, Err: catalog.ErrNetwork}})

	w, env := c.do(http.MethodPost, "/api/catalog/load", "")

	require.Equal(t, http.StatusOK, w.Code)
	view := decode[application.CatalogView](t, env.Data)
	assert.Equal(t, application.StateError, view.State)
	assert.True(t, strings.HasPrefix(view.Message, "Error loading products: "))
	assert.True(t, strings.HasSuffix(view.Message, ". Please try again."))
}

func TestCatalog_ImageErrorSwapsOnce(t *testing.T) {
	c := newClient(t, &stubSource{products: products(1)})
	c.do(http.MethodPost, "/api/catalog/load", "")

	w, env := c.do(http.MethodPost, "/api/catalog/cards/1/image-error", "")
	require.Equal(t, http.StatusOK, w.Code)
	card := decode[application.Card](t, env.Data)
	assert.True(t, card.ImageFallback)
	assert.Equal(t, card.PlaceholderURL, card.ImageURL)

	w, _ = c.do(http.MethodPost, "/api/catalog/cards/product-99/image-error", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCart_AddListClear(t *testing.T) {
	c := newClient(t, &stubSource{})

	w, env := c.do(http.MethodPost, "/api/cart/items", `{"id":"7","name":"Liner","price":"9.5"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Product added to cart!", env.Message)
	c.do(http.MethodPost, "/api/cart/items", `{"id":"7","name":"Liner","price":9.5}`)

	_, env = c.do(http.MethodGet, "/api/cart", "")
	view := decode[cartView](t, env.Data)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, []string{"Liner - $9.5", "Liner - $9.5"}, view.Lines)

	c.do(http.MethodDelete, "/api/cart", "")
	_, env = c.do(http.MethodGet, "/api/cart", "")
	assert.Equal(t, 0, decode[cartView](t, env.Data).Count)
}

func TestCart_RejectsBadItems(t *testing.T) {
	c := newClient(t, &stubSource{})

	w, env := c.do(http.MethodPost, "/api/cart/items", `{"id":"7","price":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "is required", env.Error["name"])

	w, env = c.do(http.MethodPost, "/api/cart/items", `{"id":"7","name":"Liner","price":-1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, env.Error, "price")

	w, env = c.do(http.MethodPost, "/api/cart/items", `{"id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid payload", env.Message)
}

func TestCart_ScopedPerClient(t *testing.T) {
	a := newClient(t, &stubSource{})
	a.do(http.MethodPost, "/api/cart/items", `{"id":"1","name":"Liner","price":1}`)

	b := &client{t: t, engine: a.engine}
	_, env := b.do(http.MethodGet, "/api/cart", "")
	assert.Equal(t, 0, decode[cartView](t, env.Data).Count)
}

const validRegistration = `{"name":"Ana","lastName":"Diaz","email":"ana@mail.com","password":"validpass1","repeatPassword":"validpass1","termsAccepted":true}`

func TestUser_RegisterLoginSession(t *testing.T) {
	c := newClient(t, &stubSource{})

	w, _ := c.do(http.MethodGet, "/api/session", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := c.do(http.MethodPost, "/api/register", validRegistration)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Registration successful! You can now log in.", env.Message)

	w, env = c.do(http.MethodPost, "/api/login", `{"email":"ana@mail.com","password":"validpass1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.5; url=./index.html", w.Header().Get("Refresh"))
	res := decode[application.LoginResult](t, env.Data)
	assert.Equal(t, "./index.html", res.Redirect.URL)
	assert.EqualValues(t, 1500, res.Redirect.AfterMS)

	w, env = c.do(http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana", decode[entity.Session](t, env.Data).Name)
}

func TestUser_RegisterReportsAllFields(t *testing.T) {
	c := newClient(t, &stubSource{})

	w, env := c.do(http.MethodPost, "/api/register", `{"email":"bad","password":"short","repeatPassword":"other"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Please fix the errors marked in the form.", env.Message)
	for _, f := range []string{"name", "lastName", "email", "password", "repeatPassword", "termsAccepted"} {
		assert.Contains(t, env.Error, f)
	}
}

func TestUser_LoginWrongPasswordFlagsBothFields(t *testing.T) {
	c := newClient(t, &stubSource{})
	c.do(http.MethodPost, "/api/register", validRegistration)

	w, env := c.do(http.MethodPost, "/api/login", `{"email":"ana@mail.com","password":"wrongpass1"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect email or password. Please try again.", env.Message)
	assert.Equal(t, "Incorrect credentials.", env.Error["email"])
	assert.Equal(t, "Incorrect credentials.", env.Error["password"])
	assert.Empty(t, w.Header().Get("Refresh"))
}

func TestRefreshHeader(t *testing.T) {
	assert.Equal(t, "1.5; url=./index.html", refreshHeader(application.Redirect{URL: "./index.html", AfterMS: 1500}))
	assert.Equal(t, "2; url=/", refreshHeader(application.Redirect{URL: "/", AfterMS: 2000}))
}
