package repository

import (
	"context"
	"time"

	"content-hub/internal/domain/entity"
)

// SortOrder controls ordering of search results by created_at.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ContentSearchFilters contains optional filters for content search.
// All set filters are combined with AND.
type ContentSearchFilters struct {
	TopicID *string    // Optional: exact topic match
	Title   *string    // Optional: case-insensitive substring of title
	From    *time.Time // Optional: created_at >= From (only when To is also set)
	To      *time.Time // Optional: created_at <= To (only when From is also set)
	Order   SortOrder  // Empty means ascending
}

// ContentPatch carries the fields of a partial update. Nil fields are left unchanged.
type ContentPatch struct {
	Title      *string
	Type       *string
	Credits    *string
	CategoryID *string
	TopicID    *string
}

// ContentRepository owns persistence of Content records.
type ContentRepository interface {
	// Create inserts c as is. Id and timestamps must already be set.
	// Returns entity.ErrCreationFailed when the insert is rejected.
	Create(ctx context.Context, c *entity.Content) error
	// Get returns entity.ErrNotFound when no record has the id.
	Get(ctx context.Context, id string) (*entity.Content, error)
	List(ctx context.Context) ([]*entity.Content, error)
	Search(ctx context.Context, filters ContentSearchFilters) ([]*entity.Content, error)
	// CountByCategory groups content by category, optionally within one topic.
	// Categories without content are not returned.
	CountByCategory(ctx context.Context, topicID *string) ([]entity.CategoryCount, error)
	// Update applies patch and refreshes updated_at, returning the stored record.
	Update(ctx context.Context, id string, patch ContentPatch) (*entity.Content, error)
	Delete(ctx context.Context, id string) error
}
