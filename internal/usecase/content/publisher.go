package content

import (
	"context"

	"content-hub/internal/domain/entity"
)

// Publisher delivers content change events to live subscribers.
// Implementations must not block the caller on subscriber delivery.
type Publisher interface {
	Publish(ctx context.Context, event entity.ContentEvent) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, event entity.ContentEvent) error

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, event entity.ContentEvent) error {
	return f(ctx, event)
}

// AssociationResult is the explicit outcome of the category/topic check.
type AssociationResult int

const (
	NotAssociated AssociationResult = iota
	Associated
)

func (r AssociationResult) String() string {
	if r == Associated {
		return "associated"
	}
	return "not_associated"
}
