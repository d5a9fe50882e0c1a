// Package notify fans content change events out to delivery channels.
// Dispatcher implements the content Publisher: every event is handed to each
// enabled Channel on a bounded pool of goroutines, with a circuit breaker per channel.
package notify

import (
	"context"

	"content-hub/internal/domain/entity"
)

// Channel is one delivery target for content events (the websocket hub,
// the Redis bridge).
//
// Thread Safety:
//   - All methods must be safe for concurrent use by multiple goroutines
//
// Context Handling:
//   - Send must respect context cancellation and timeout
type Channel interface {
	// Name is used for logging, metrics labels and health output.
	Name() string

	// IsEnabled returns false to have the channel skipped during dispatch.
	IsEnabled() bool

	// Send delivers event. Delivery to individual subscribers is best effort;
	// an error means the channel as a whole failed.
	Send(ctx context.Context, event entity.ContentEvent) error
}
