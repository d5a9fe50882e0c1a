package repository

import (
	"context"

	"content-hub/internal/domain/entity"
)

type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Create returns entity.ErrAlreadyExists when username or email is taken.
	Create(ctx context.Context, u *entity.User) error
}
