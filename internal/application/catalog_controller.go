package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/internal/domain/catalog"
	"github.com/oksasatya/majesty-shop/internal/domain/entity"
)

// ProductSource loads the full product list.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
}

type CatalogState string

const (
	StateIdle      CatalogState = "idle"
	StateLoading   CatalogState = "loading"
	StateError     CatalogState = "error"
	StateEmpty     CatalogState = "empty"
	StatePopulated CatalogState = "populated"
)

const (
	labelLoadMore = "Load more products"
	labelLoading  = "Loading..."
	msgNoProducts = "No products found."
)

type LoadMoreControl struct {
	Visible  bool   `json:"visible"`
	Disabled bool   `json:"disabled"`
	Label    string `json:"label"`
}

// CatalogView is everything the product page displays.
type CatalogView struct {
	State        CatalogState    `json:"state"`
	Loading      bool            `json:"loading"`
	Message      string          `json:"message,omitempty"`
	Cards        []Card          `json:"cards"`
	LoadMore     LoadMoreControl `json:"load_more"`
	EndOfResults bool            `json:"end_of_results"`
	Total        int             `json:"total"`
	Offset       int             `json:"offset"`
}

// CatalogController drives one product page:
// idle -> loading -> error | empty | populated, where populated moves from
// has-more to exhausted as batches are shown.
type CatalogController struct {
	source   ProductSource
	renderer *CardRenderer
	pageSize int
	logger   *logrus.Logger

	mu    sync.Mutex
	pager *catalog.Pager
	view  CatalogView
}

func NewCatalogController(source ProductSource, renderer *CardRenderer, pageSize int, logger *logrus.Logger) *CatalogController {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &CatalogController{
		source:   source,
		renderer: renderer,
		pageSize: pageSize,
		logger:   logger,
		view:     CatalogView{State: StateIdle, Cards: []Card{}},
	}
}

// Start fetches the product list and shows the first batch. Calling it again
// from a settled state reloads from scratch. It is busy while a fetch is in
// flight or a LoadMore batch is still rendering.
func (c *CatalogController) Start(ctx context.Context) (CatalogView, error) {
	c.mu.Lock()
	if c.view.State == StateLoading || c.view.LoadMore.Disabled {
		c.mu.Unlock()
		return CatalogView{}, ErrCatalogBusy
	}
	c.pager = nil
	c.view = CatalogView{State: StateLoading, Loading: true, Cards: []Card{}}
	c.transition(StateLoading)
	c.mu.Unlock()

	products, err := c.source.ListProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Loading = false

	switch {
	case err != nil:
		if c.logger != nil {
			c.logger.WithError(err).Error("failed to load products")
		}
		c.view.State = StateError
		c.view.Message = fmt.Sprintf("Error loading products: %v. Please try again.", err)
	case len(products) == 0:
		c.view.State = StateEmpty
		c.view.Message = msgNoProducts
	default:
		c.pager = catalog.NewPager(products)
		c.view.State = StatePopulated
		c.view.Total = c.pager.Len()
		c.view.Cards = append(c.view.Cards, c.render(c.pager.NextBatch(c.pageSize))...)
		c.settleLoadMore()
	}
	c.transition(c.view.State)
	return c.snapshot(), nil
}

// LoadMore shows the next batch. The control is disabled while the batch is
// rendered; a second call in that window gets ErrLoadMoreUnavailable.
func (c *CatalogController) LoadMore(ctx context.Context) (CatalogView, error) {
	c.mu.Lock()
	if c.view.State != StatePopulated || !c.view.LoadMore.Visible || c.view.LoadMore.Disabled {
		c.mu.Unlock()
		return CatalogView{}, ErrLoadMoreUnavailable
	}
	c.view.LoadMore.Disabled = true
	c.view.LoadMore.Label = labelLoading
	batch := c.pager.NextBatch(c.pageSize)
	c.mu.Unlock()

	cards := c.render(batch)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Cards = append(c.view.Cards, cards...)
	c.settleLoadMore()
	return c.snapshot(), nil
}

// ImageFailed swaps the image of a shown card for its placeholder. It does
// not touch the page state.
func (c *CatalogController) ImageFailed(elementID string) (Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.view.Cards {
		if c.view.Cards[i].ElementID == elementID {
			c.view.Cards[i].ImageFailed()
			return c.view.Cards[i], nil
		}
	}
	return Card{}, ErrCardNotFound
}

func (c *CatalogController) View() CatalogView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *CatalogController) render(batch []entity.Product) []Card {
	cards := make([]Card, 0, len(batch))
	for _, p := range batch {
		if card, ok := c.renderer.Render(p); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// settleLoadMore must be called with mu held after a batch was shown.
func (c *CatalogController) settleLoadMore() {
	c.view.Offset = min(c.pager.Cursor(), c.pager.Len())
	if c.pager.HasMore() {
		c.view.LoadMore = LoadMoreControl{Visible: true, Label: labelLoadMore}
		return
	}
	c.view.LoadMore = LoadMoreControl{}
	c.view.EndOfResults = true
}

func (c *CatalogController) snapshot() CatalogView {
	v := c.view
	v.Cards = make([]Card, len(c.view.Cards))
	copy(v.Cards, c.view.Cards)
	return v
}

func (c *CatalogController) transition(to CatalogState) {
	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{"state": to, "total": c.view.Total, "offset": c.view.Offset}).Debug("catalog state")
	}
}

const (
	defaultIdleTTL    = 30 * time.Minute
	defaultMaxClients = 10000
)

type controllerEntry struct {
	ctrl     *CatalogController
	lastUsed time.Time
}

// CatalogService keeps one controller per client scope. Controllers unused for
// IdleTTL are dropped, and at most MaxClients are held; past that the least
// recently used one is evicted.
type CatalogService struct {
	Source     ProductSource
	Renderer   *CardRenderer
	PageSize   int
	Logger     *logrus.Logger
	IdleTTL    time.Duration
	MaxClients int
	Now        func() time.Time

	mu          sync.Mutex
	controllers map[string]*controllerEntry
	lastSweep   time.Time
}

func NewCatalogService(source ProductSource, renderer *CardRenderer, pageSize int, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		Source:      source,
		Renderer:    renderer,
		PageSize:    pageSize,
		Logger:      logger,
		IdleTTL:     defaultIdleTTL,
		MaxClients:  defaultMaxClients,
		Now:         time.Now,
		controllers: make(map[string]*controllerEntry),
	}
}

func (s *CatalogService) Controller(clientID string) *CatalogController {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	s.sweep(now)

	e, ok := s.controllers[clientID]
	if !ok {
		if s.MaxClients > 0 && len(s.controllers) >= s.MaxClients {
			s.evictOldest()
		}
		e = &controllerEntry{ctrl: NewCatalogController(s.Source, s.Renderer, s.PageSize, s.Logger)}
		s.controllers[clientID] = e
	}
	e.lastUsed = now
	return e.ctrl
}

// Len reports how many client controllers are held.
func (s *CatalogService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.controllers)
}

// sweep drops idle controllers, at most once per half TTL. mu must be held.
func (s *CatalogService) sweep(now time.Time) {
	if s.IdleTTL <= 0 || now.Sub(s.lastSweep) < s.IdleTTL/2 {
		return
	}
	s.lastSweep = now
	dropped := 0
	for id, e := range s.controllers {
		if now.Sub(e.lastUsed) > s.IdleTTL {
			delete(s.controllers, id)
			dropped++
		}
	}
	if dropped > 0 && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"dropped": dropped, "held": len(s.controllers)}).Debug("idle catalog controllers evicted")
	}
}

// evictOldest removes the least recently used controller. mu must be held.
func (s *CatalogService) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, e := range s.controllers {
		if oldestID == "" || e.lastUsed.Before(oldest) {
			oldestID, oldest = id, e.lastUsed
		}
	}
	delete(s.controllers, oldestID)
}
