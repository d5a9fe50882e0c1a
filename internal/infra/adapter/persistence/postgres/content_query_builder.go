// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	sq "github.com/Masterminds/squirrel"

	"content-hub/internal/repository"
)

var contentColumns = []string{
	"id", "title", "type", "credits", "creator_id",
	"category_id", "topic_id", "created_at", "updated_at",
}

// ContentQueryBuilder builds search and aggregation queries over contents.
// Every search, filtered or not, goes through Search so list and search share one path.
type ContentQueryBuilder struct {
	sb sq.StatementBuilderType
}

// NewContentQueryBuilder creates a builder using $N placeholders.
func NewContentQueryBuilder() *ContentQueryBuilder {
	return &ContentQueryBuilder{sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

// Search returns the SELECT for the given filters.
// The date range only applies when both bounds are present.
func (qb *ContentQueryBuilder) Search(f repository.ContentSearchFilters) (string, []any, error) {
	q := qb.sb.Select(contentColumns...).From("contents")

	if f.TopicID != nil {
		q = q.Where(sq.Eq{"topic_id": *f.TopicID})
	}
	if f.Title != nil && *f.Title != "" {
		q = q.Where(sq.ILike{"title": containsPattern(*f.Title)})
	}
	if f.From != nil && f.To != nil {
		q = q.Where(sq.GtOrEq{"created_at": *f.From}).
			Where(sq.LtOrEq{"created_at": *f.To})
	}

	if f.Order == repository.SortDesc {
		q = q.OrderBy("created_at DESC", "id DESC")
	} else {
		q = q.OrderBy("created_at ASC", "id ASC")
	}

	return q.ToSql()
}

// CountByCategory returns the grouped count, optionally within one topic.
func (qb *ContentQueryBuilder) CountByCategory(topicID *string) (string, []any, error) {
	q := qb.sb.Select("category_id", "COUNT(*) AS count").From("contents")
	if topicID != nil {
		q = q.Where(sq.Eq{"topic_id": *topicID})
	}
	return q.GroupBy("category_id").OrderBy("category_id").ToSql()
}

// Update returns the UPDATE ... RETURNING statement for a partial patch.
// updated_at always moves forward, even for an empty patch.
func (qb *ContentQueryBuilder) Update(id string, p repository.ContentPatch) (string, []any, error) {
	q := qb.sb.Update("contents")
	if p.Title != nil {
		q = q.Set("title", *p.Title)
	}
	if p.Type != nil {
		q = q.Set("type", *p.Type)
	}
	if p.Credits != nil {
		q = q.Set("credits", *p.Credits)
	}
	if p.CategoryID != nil {
		q = q.Set("category_id", *p.CategoryID)
	}
	if p.TopicID != nil {
		q = q.Set("topic_id", *p.TopicID)
	}
	q = q.Set("updated_at", sq.Expr("GREATEST(clock_timestamp(), updated_at + interval '1 microsecond')"))

	return q.Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, title, type, credits, creator_id, category_id, topic_id, created_at, updated_at").
		ToSql()
}
