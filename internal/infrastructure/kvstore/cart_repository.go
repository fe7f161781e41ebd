package kvstore

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/internal/domain/entity"
	"github.com/oksasatya/majesty-shop/internal/domain/repository"
)

type CartRepository struct {
	kv     repository.KeyValueStore
	logger *logrus.Logger
}

func NewCartRepository(kv repository.KeyValueStore, logger *logrus.Logger) *CartRepository {
	return &CartRepository{kv: kv, logger: logger}
}

// Add appends item to the stored sequence and returns the new sequence.
func (r *CartRepository) Add(ctx context.Context, item entity.CartItem) ([]entity.CartItem, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	items = append(items, item)
	if err := setJSON(ctx, r.kv, KeyCart, items); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return items, nil
}

func (r *CartRepository) List(ctx context.Context) ([]entity.CartItem, error) {
	items := []entity.CartItem{}
	if _, err := getJSON(ctx, r.kv, r.logger, KeyCart, &items); err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if items == nil {
		items = []entity.CartItem{}
	}
	return items, nil
}

// Clear deletes the cart key outright.
func (r *CartRepository) Clear(ctx context.Context) error {
	if err := r.kv.Remove(ctx, KeyCart); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

var _ repository.CartRepository = (*CartRepository)(nil)
