package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"content-hub/internal/domain/entity"
	"content-hub/internal/repository"
)

type TopicRepo struct {
	db *sql.DB
}

func NewTopicRepo(database *sql.DB) repository.TopicRepository {
	return &TopicRepo{db: database}
}

func scanTopic(s rowScanner) (*entity.Topic, error) {
	var t entity.Topic
	if err := s.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (repo *TopicRepo) queryTopics(ctx context.Context, op, query string, args ...any) ([]*entity.Topic, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapReadError(op, err)
	}
	defer func() { _ = rows.Close() }()

	var topics []*entity.Topic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (repo *TopicRepo) List(ctx context.Context) ([]*entity.Topic, error) {
	const query = `SELECT id, name, created_at, updated_at FROM topics ORDER BY name ASC`
	return repo.queryTopics(ctx, "List", query)
}

func (repo *TopicRepo) SearchByName(ctx context.Context, name string) ([]*entity.Topic, error) {
	const query = `
SELECT id, name, created_at, updated_at
FROM topics
WHERE name ILIKE $1
ORDER BY name ASC`
	return repo.queryTopics(ctx, "SearchByName", query, containsPattern(name))
}

func (repo *TopicRepo) Get(ctx context.Context, id string) (*entity.Topic, error) {
	const query = `SELECT id, name, created_at, updated_at FROM topics WHERE id = $1`
	t, err := scanTopic(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("Get: %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, mapReadError("Get", err)
	}
	return t, nil
}

func (repo *TopicRepo) Create(ctx context.Context, t *entity.Topic) error {
	const query = `INSERT INTO topics (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	_, err := repo.db.ExecContext(ctx, query, t.ID, t.Name, t.CreatedAt, t.UpdatedAt)
	return mapWriteError("Create", err, entity.ErrCreationFailed)
}

func (repo *TopicRepo) Update(ctx context.Context, t *entity.Topic) error {
	const query = `UPDATE topics SET name = $1, updated_at = $2 WHERE id = $3`
	res, err := repo.db.ExecContext(ctx, query, t.Name, t.UpdatedAt, t.ID)
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

func (repo *TopicRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM topics WHERE id = $1`
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
