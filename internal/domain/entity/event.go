package entity

import "time"

// EventType names a content change event on the realtime channel.
type EventType string

const (
	EventContentCreated EventType = "contentCreated"
	EventContentUpdated EventType = "contentUpdated"
	EventContentDeleted EventType = "contentDeleted"
)

// ContentEvent is emitted once per committed content mutation.
// Content is nil for deletions; only ContentID is meaningful then.
type ContentEvent struct {
	Type       EventType
	ContentID  string
	Content    *Content
	OccurredAt time.Time
}

// NewContentEvent builds an event for a created or updated record.
func NewContentEvent(t EventType, c *Content) ContentEvent {
	return ContentEvent{Type: t, ContentID: c.ID, Content: c, OccurredAt: time.Now()}
}

// NewContentDeletedEvent builds a deletion event carrying only the id.
func NewContentDeletedEvent(id string) ContentEvent {
	return ContentEvent{Type: EventContentDeleted, ContentID: id, OccurredAt: time.Now()}
}
