// Package content implements the content use cases: association-checked creation
// and update, deletion, the read queries, and change event publication.
package content

import "errors"

var (
	// ErrCategoryNotAssociatedWithTopic is returned when a write names a
	// (category, topic) pair that is not in the association index. Nothing is written.
	ErrCategoryNotAssociatedWithTopic = errors.New("category is not associated with topic")

	// ErrInvalidContentID indicates an empty or malformed content id.
	ErrInvalidContentID = errors.New("invalid content ID")
)
