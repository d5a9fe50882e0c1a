package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"content-hub/internal/domain/entity"
	"content-hub/internal/repository"
)

type ContentRepo struct {
	db           *sql.DB
	queryBuilder *ContentQueryBuilder
}

func NewContentRepo(database *sql.DB) repository.ContentRepository {
	return &ContentRepo{
		db:           database,
		queryBuilder: NewContentQueryBuilder(),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(s rowScanner) (*entity.Content, error) {
	var c entity.Content
	var creatorID sql.NullString
	if err := s.Scan(&c.ID, &c.Title, &c.Type, &c.Credits, &creatorID,
		&c.CategoryID, &c.TopicID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.CreatorID = creatorID.String
	return &c, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (repo *ContentRepo) Create(ctx context.Context, c *entity.Content) error {
	const query = `
INSERT INTO contents (id, title, type, credits, creator_id, category_id, topic_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := repo.db.ExecContext(ctx, query,
		c.ID, c.Title, c.Type, c.Credits, nullable(c.CreatorID),
		c.CategoryID, c.TopicID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		err = mapWriteError("Create", err, entity.ErrCreationFailed)
		if errors.Is(err, entity.ErrAlreadyExists) {
			return fmt.Errorf("%w: %v", entity.ErrCreationFailed, err)
		}
		return err
	}
	return nil
}

func (repo *ContentRepo) Get(ctx context.Context, id string) (*entity.Content, error) {
	const query = `
SELECT id, title, type, credits, creator_id, category_id, topic_id, created_at, updated_at
FROM contents
WHERE id = $1
LIMIT 1`
	c, err := scanContent(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("Get: %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, mapReadError("Get", err)
	}
	return c, nil
}

// List is Search without filters.
func (repo *ContentRepo) List(ctx context.Context) ([]*entity.Content, error) {
	return repo.Search(ctx, repository.ContentSearchFilters{})
}

func (repo *ContentRepo) Search(ctx context.Context, filters repository.ContentSearchFilters) ([]*entity.Content, error) {
	query, args, err := repo.queryBuilder.Search(filters)
	if err != nil {
		return nil, fmt.Errorf("Search: build: %w", err)
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapReadError("Search", err)
	}
	defer func() { _ = rows.Close() }()

	contents := make([]*entity.Content, 0, 32)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("Search: Scan: %w", err)
		}
		contents = append(contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadError("Search: rows.Err", err)
	}
	return contents, nil
}

func (repo *ContentRepo) CountByCategory(ctx context.Context, topicID *string) ([]entity.CategoryCount, error) {
	query, args, err := repo.queryBuilder.CountByCategory(topicID)
	if err != nil {
		return nil, fmt.Errorf("CountByCategory: build: %w", err)
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapReadError("CountByCategory", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make([]entity.CategoryCount, 0, 16)
	for rows.Next() {
		var cc entity.CategoryCount
		if err := rows.Scan(&cc.CategoryID, &cc.Count); err != nil {
			return nil, fmt.Errorf("CountByCategory: Scan: %w", err)
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadError("CountByCategory: rows.Err", err)
	}
	return counts, nil
}

func (repo *ContentRepo) Update(ctx context.Context, id string, patch repository.ContentPatch) (*entity.Content, error) {
	query, args, err := repo.queryBuilder.Update(id, patch)
	if err != nil {
		return nil, fmt.Errorf("Update: build: %w", err)
	}

	c, err := scanContent(repo.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, mapWriteError("Update", err, entity.ErrUpdateFailed)
	}
	return c, nil
}

func (repo *ContentRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM contents WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
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
