// Package category implements CRUD use cases for content categories.
package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"content-hub/internal/domain/entity"
	"content-hub/internal/repository"
)

type CreateInput struct {
	Name       string
	Type       entity.ContentType
	CoverImage string
}

// UpdateInput is a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Name       *string
	Type       *entity.ContentType
	CoverImage *string
}

type Service struct {
	Repo  repository.CategoryRepository
	Now   func() time.Time
	NewID func() string
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) List(ctx context.Context) ([]*entity.Category, error) {
	cats, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *Service) Get(ctx context.Context, id string) (*entity.Category, error) {
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// Create validates in and stores a new category.
// A duplicate name surfaces as entity.ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Category, error) {
	now := s.now()
	c := &entity.Category{
		ID:         s.newID(),
		Name:       strings.TrimSpace(in.Name),
		Type:       in.Type,
		CoverImage: strings.TrimSpace(in.CoverImage),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*entity.Category, error) {
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		c.Type = *in.Type
	}
	if in.CoverImage != nil {
		c.CoverImage = strings.TrimSpace(*in.CoverImage)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Delete removes a category. Categories still referenced by content
// cannot be deleted and yield entity.ErrDeletionFailed.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
