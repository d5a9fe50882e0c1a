package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"content-hub/internal/domain/entity"
	"content-hub/internal/infra/db"
	"content-hub/internal/repository"
)

// AssociationRepo stores the category/topic join set in category_topics.
type AssociationRepo struct {
	db *sql.DB
	tx *db.TxManager
}

func NewAssociationRepo(database *sql.DB, tx *db.TxManager) repository.AssociationRepository {
	return &AssociationRepo{db: database, tx: tx}
}

func (repo *AssociationRepo) IsAssociated(ctx context.Context, categoryID, topicID string) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM category_topics WHERE category_id = $1 AND topic_id = $2
)`
	var ok bool
	if err := db.QuerierFrom(ctx, repo.db).QueryRowContext(ctx, query, categoryID, topicID).Scan(&ok); err != nil {
		return false, mapReadError("IsAssociated", err)
	}
	return ok, nil
}

// ReplaceAssociations swaps the topic's category set in one transaction.
// The topic row is locked so concurrent replaces for the same topic serialize.
func (repo *AssociationRepo) ReplaceAssociations(ctx context.Context, topicID string, categoryIDs []string) error {
	const (
		lockTopic = `SELECT id FROM topics WHERE id = $1 FOR UPDATE`
		deleteAll = `DELETE FROM category_topics WHERE topic_id = $1`
		insertSet = `
INSERT INTO category_topics (category_id, topic_id)
SELECT DISTINCT c, $1 FROM unnest($2::text[]) AS c`
	)

	return repo.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := db.QuerierFrom(ctx, repo.db)

		var locked string
		err := q.QueryRowContext(ctx, lockTopic, topicID).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("ReplaceAssociations: topic: %w", entity.ErrNotFound)
		}
		if err != nil {
			return mapReadError("ReplaceAssociations: lock", err)
		}

		if _, err := q.ExecContext(ctx, deleteAll, topicID); err != nil {
			return mapWriteError("ReplaceAssociations: delete", err, entity.ErrUpdateFailed)
		}

		if len(categoryIDs) == 0 {
			return nil
		}

		if _, err := q.ExecContext(ctx, insertSet, topicID, pq.Array(categoryIDs)); err != nil {
			// 23503: 存在しないカテゴリID
			return mapWriteError("ReplaceAssociations: insert", err, entity.ErrNotFound)
		}
		return nil
	})
}

func (repo *AssociationRepo) ListCategoryIDs(ctx context.Context, topicID string) ([]string, error) {
	const query = `SELECT category_id FROM category_topics WHERE topic_id = $1 ORDER BY category_id`
	rows, err := db.QuerierFrom(ctx, repo.db).QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, mapReadError("ListCategoryIDs", err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]string, 0, 8)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ListCategoryIDs: Scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
