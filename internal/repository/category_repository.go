package repository

import (
	"context"

	"content-hub/internal/domain/entity"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	Get(ctx context.Context, id string) (*entity.Category, error)
	// Missing returns the ids that do not match any category.
	Missing(ctx context.Context, ids []string) ([]string, error)
	Create(ctx context.Context, c *entity.Category) error
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
}
