package repository

import "context"

// AssociationRepository is the category/topic join set.
type AssociationRepository interface {
	IsAssociated(ctx context.Context, categoryID, topicID string) (bool, error)
	// ReplaceAssociations atomically swaps the full category set of a topic.
	// Duplicate ids collapse and an empty slice clears the topic.
	ReplaceAssociations(ctx context.Context, topicID string, categoryIDs []string) error
	ListCategoryIDs(ctx context.Context, topicID string) ([]string, error)
}
