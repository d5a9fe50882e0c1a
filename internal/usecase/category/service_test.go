package category_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-hub/internal/domain/entity"
	"content-hub/internal/usecase/category"
)

type stubRepo struct {
	data      map[string]*entity.Category
	deleteErr error
}

func newStubRepo() *stubRepo { return &stubRepo{data: map[string]*entity.Category{}} }

func (r *stubRepo) List(context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.data {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubRepo) Get(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.data[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubRepo) Missing(context.Context, []string) ([]string, error) { return nil, nil }

func (r *stubRepo) Create(_ context.Context, c *entity.Category) error {
	for _, existing := range r.data {
		if existing.Name == c.Name {
			return fmt.Errorf("Create: %w", entity.ErrAlreadyExists)
		}
	}
	cp := *c
	r.data[c.ID] = &cp
	return nil
}

func (r *stubRepo) Update(_ context.Context, c *entity.Category) error {
	if _, ok := r.data[c.ID]; !ok {
		return entity.ErrNotFound
	}
	cp := *c
	r.data[c.ID] = &cp
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

var fixedNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func newService(repo *stubRepo) *category.Service {
	n := 0
	return &category.Service{
		Repo: repo,
		Now:  func() time.Time { return fixedNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("cat-%d", n)
		},
	}
}

func TestService_Create(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)

	c, err := svc.Create(context.Background(), category.CreateInput{
		Name:       "  Photos ",
		Type:       entity.ContentTypeImage,
		CoverImage: "https://example.com/cover.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "cat-1", c.ID)
	assert.Equal(t, "Photos", c.Name)
	assert.Equal(t, fixedNow, c.CreatedAt)
	assert.Contains(t, repo.data, "cat-1")

	_, err = svc.Create(context.Background(), category.CreateInput{Name: "Photos", Type: entity.ContentTypeImage})
	assert.ErrorIs(t, err, entity.ErrAlreadyExists)
}

func TestService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   category.CreateInput
	}{
		{"empty name", category.CreateInput{Type: entity.ContentTypeText}},
		{"unknown type", category.CreateInput{Name: "Docs", Type: "AUDIO"}},
		{"bad cover", category.CreateInput{Name: "Docs", Type: entity.ContentTypeText, CoverImage: "ftp://x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepo()
			_, err := newService(repo).Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, entity.ErrValidationFailed)
			assert.Empty(t, repo.data)
		})
	}
}

func TestService_Update(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	created, err := svc.Create(context.Background(), category.CreateInput{Name: "Clips", Type: entity.ContentTypeVideo})
	require.NoError(t, err)

	later := fixedNow.Add(time.Hour)
	svc.Now = func() time.Time { return later }

	name := "Short clips"
	got, err := svc.Update(context.Background(), created.ID, category.UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Short clips", got.Name)
	assert.Equal(t, entity.ContentTypeVideo, got.Type)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, later, got.UpdatedAt)

	_, err = svc.Update(context.Background(), "missing", category.UpdateInput{Name: &name})
	assert.ErrorIs(t, err, entity.ErrNotFound)

	bad := entity.ContentType("AUDIO")
	_, err = svc.Update(context.Background(), created.ID, category.UpdateInput{Type: &bad})
	assert.ErrorIs(t, err, entity.ErrValidationFailed)
}

func TestService_Delete(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	created, err := svc.Create(context.Background(), category.CreateInput{Name: "Docs", Type: entity.ContentTypeText})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), entity.ErrNotFound)

	repo.deleteErr = fmt.Errorf("Delete: %w", entity.ErrDeletionFailed)
	err = svc.Delete(context.Background(), "any")
	assert.True(t, errors.Is(err, entity.ErrDeletionFailed))
}
