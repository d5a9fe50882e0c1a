package repository

import (
	"context"

	"content-hub/internal/domain/entity"
)

type TopicRepository interface {
	List(ctx context.Context) ([]*entity.Topic, error)
	Get(ctx context.Context, id string) (*entity.Topic, error)
	SearchByName(ctx context.Context, name string) ([]*entity.Topic, error)
	Create(ctx context.Context, t *entity.Topic) error
	Update(ctx context.Context, t *entity.Topic) error
	Delete(ctx context.Context, id string) error
}
