package notify

import "errors"

// Sentinel errors for notify operations.
var (
	// ErrChannelDisabled indicates that Send was called on a disabled channel.
	ErrChannelDisabled = errors.New("channel is disabled")

	// ErrInvalidEvent indicates an event without a type or content id.
	ErrInvalidEvent = errors.New("invalid content event")

	// ErrDispatcherClosed is returned by Publish after Shutdown.
	ErrDispatcherClosed = errors.New("dispatcher is shut down")
)
