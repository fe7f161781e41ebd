package repository

import (
	"context"

	"github.com/oksasatya/majesty-shop/internal/domain/entity"
)

// CartRepository defines the operations on the persisted cart.
type CartRepository interface {
	Add(ctx context.Context, item entity.CartItem) ([]entity.CartItem, error)
	List(ctx context.Context) ([]entity.CartItem, error)
	Clear(ctx context.Context) error
}
