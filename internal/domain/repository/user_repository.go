package repository

import (
	"context"

	"github.com/oksasatya/majesty-shop/internal/domain/entity"
)

// UserRepository defines the operations on the persisted user list and the current session.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	Append(ctx context.Context, u entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	SaveSession(ctx context.Context, s entity.Session) error
	CurrentSession(ctx context.Context) (*entity.Session, error)
}
