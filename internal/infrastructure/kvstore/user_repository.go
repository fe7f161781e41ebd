package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/internal/domain/entity"
	"github.com/oksasatya/majesty-shop/internal/domain/repository"
)

var ErrNotFound = errors.New("not found")

type UserRepository struct {
	kv     repository.KeyValueStore
	logger *logrus.Logger
}

func NewUserRepository(kv repository.KeyValueStore, logger *logrus.Logger) *UserRepository {
	return &UserRepository{kv: kv, logger: logger}
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	users := []entity.User{}
	if _, err := getJSON(ctx, r.kv, r.logger, KeyUsers, &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

// Append adds u to the user list. Email uniqueness is the caller's concern.
func (r *UserRepository) Append(ctx context.Context, u entity.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	users = append(users, u)
	if err := setJSON(ctx, r.kv, KeyUsers, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *UserRepository) SaveSession(ctx context.Context, s entity.Session) error {
	if err := setJSON(ctx, r.kv, KeyCurrentUser, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *UserRepository) CurrentSession(ctx context.Context) (*entity.Session, error) {
	var s entity.Session
	ok, err := getJSON(ctx, r.kv, r.logger, KeyCurrentUser, &s)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
