// Package topic implements topic management and the replacement of a topic's
// category associations.
package topic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"content-hub/internal/domain/entity"
	"content-hub/internal/repository"
)

type Service struct {
	Repo         repository.TopicRepository
	Categories   repository.CategoryRepository
	Associations repository.AssociationRepository
	Now          func() time.Time
	NewID        func() string
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

func (s *Service) List(ctx context.Context) ([]*entity.Topic, error) {
	topics, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// Search returns topics whose name contains name, case-insensitively.
// An empty name lists every topic.
func (s *Service) Search(ctx context.Context, name string) ([]*entity.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.List(ctx)
	}
	topics, err := s.Repo.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search topics: %w", err)
	}
	return topics, nil
}

func (s *Service) Get(ctx context.Context, id string) (*entity.Topic, error) {
	t, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return t, nil
}

func (s *Service) Create(ctx context.Context, name string) (*entity.Topic, error) {
	now := s.now()
	t := &entity.Topic{ID: s.newID(), Name: strings.TrimSpace(name), CreatedAt: now, UpdatedAt: now}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return t, nil
}

func (s *Service) Rename(ctx context.Context, id, name string) (*entity.Topic, error) {
	t, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("rename topic: %w", err)
	}
	t.Name = strings.TrimSpace(name)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("rename topic: %w", err)
	}
	return t, nil
}

// Delete removes a topic. Its associations go with it; referencing content blocks the delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	return nil
}

// AssignCategories replaces the full category set of topic id.
// The topic must exist and every category id must be known; otherwise nothing changes.
func (s *Service) AssignCategories(ctx context.Context, id string, categoryIDs []string) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return fmt.Errorf("assign categories: %w", err)
	}

	missing, err := s.Categories.Missing(ctx, categoryIDs)
	if err != nil {
		return fmt.Errorf("assign categories: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, strings.Join(missing, ", "))
	}

	if err := s.Associations.ReplaceAssociations(ctx, id, categoryIDs); err != nil {
		return fmt.Errorf("assign categories: %w", err)
	}
	return nil
}

// ListCategories returns the ids of the categories associated with topic id.
func (s *Service) ListCategories(ctx context.Context, id string) ([]string, error) {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("list topic categories: %w", err)
	}
	ids, err := s.Associations.ListCategoryIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list topic categories: %w", err)
	}
	return ids, nil
}
