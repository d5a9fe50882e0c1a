package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"content-hub/internal/domain/entity"
	"content-hub/internal/repository"
)

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(database *sql.DB) repository.CategoryRepository {
	return &CategoryRepo{db: database}
}

func scanCategory(s rowScanner) (*entity.Category, error) {
	var c entity.Category
	var typ string
	var cover sql.NullString
	if err := s.Scan(&c.ID, &c.Name, &typ, &cover, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Type = entity.ContentType(typ)
	c.CoverImage = cover.String
	return &c, nil
}

func (repo *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	const query = `
SELECT id, name, type, cover_image, created_at, updated_at
FROM categories
ORDER BY name ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapReadError("List", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (repo *CategoryRepo) Get(ctx context.Context, id string) (*entity.Category, error) {
	const query = `
SELECT id, name, type, cover_image, created_at, updated_at
FROM categories
WHERE id = $1`
	c, err := scanCategory(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("Get: %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, mapReadError("Get", err)
	}
	return c, nil
}

func (repo *CategoryRepo) Missing(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `
SELECT DISTINCT u.id
FROM unnest($1::text[]) AS u(id)
WHERE NOT EXISTS (SELECT 1 FROM categories c WHERE c.id = u.id)
ORDER BY u.id`
	rows, err := repo.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, mapReadError("Missing", err)
	}
	defer func() { _ = rows.Close() }()

	var missing []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("Missing: Scan: %w", err)
		}
		missing = append(missing, id)
	}
	return missing, rows.Err()
}

func (repo *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	const query = `
INSERT INTO categories (id, name, type, cover_image, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := repo.db.ExecContext(ctx, query,
		c.ID, c.Name, string(c.Type), nullable(c.CoverImage), c.CreatedAt, c.UpdatedAt)
	return mapWriteError("Create", err, entity.ErrCreationFailed)
}

func (repo *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	const query = `
UPDATE categories
SET name = $1, type = $2, cover_image = $3, updated_at = $4
WHERE id = $5`
	res, err := repo.db.ExecContext(ctx, query,
		c.Name, string(c.Type), nullable(c.CoverImage), c.UpdatedAt, c.ID)
	if err != nil {
		return mapWriteError("Update", err, entity.ErrUpdateFailed)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *CategoryRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM categories WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		// contents が参照している場合は 23503
		return mapWriteError("Delete", err, entity.ErrDeletionFailed)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}
