package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/internal/domain/entity"
	repo "github.com/oksasatya/majesty-shop/internal/domain/repository"
	"github.com/oksasatya/majesty-shop/internal/infrastructure/kvstore"
)

type CartService struct {
	Storage repo.Storage
	Logger  *logrus.Logger
}

func NewCartService(storage repo.Storage, logger *logrus.Logger) *CartService {
	return &CartService{Storage: storage, Logger: logger}
}

type AddCartItemInput struct {
	ID    string          `json:"id" binding:"required"`
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
}

func (s *CartService) repo(clientID string) repo.CartRepository {
	return kvstore.NewCartRepository(s.Storage.Scope(clientID), s.Logger)
}

// Add appends a line to the client's cart. The same product added twice
// yields two lines.
func (s *CartService) Add(ctx context.Context, clientID string, in AddCartItemInput) ([]entity.CartItem, error) {
	items, err := s.repo(clientID).Add(ctx, entity.CartItem{ID: in.ID, Name: in.Name, Price: in.Price})
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("client_id", clientID).Error("add to cart failed")
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"client_id": clientID, "product_id": in.ID}).Debug("product added to cart")
	}
	return items, nil
}

func (s *CartService) List(ctx context.Context, clientID string) ([]entity.CartItem, error) {
	return s.repo(clientID).List(ctx)
}

func (s *CartService) Clear(ctx context.Context, clientID string) error {
	return s.repo(clientID).Clear(ctx)
}
