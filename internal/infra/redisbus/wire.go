package redisbus

import (
	"encoding/json"
	"fmt"
	"time"

	"content-hub/internal/domain/entity"
)

type wireContent struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	Credits    string    `json:"credits,omitempty"`
	CreatorID  string    `json:"creatorId"`
	CategoryID string    `json:"categoryId"`
	TopicID    string    `json:"topicId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// wireEvent is the pub/sub payload. Instance identifies the publisher.
type wireEvent struct {
	Instance   string           `json:"instance"`
	Type       entity.EventType `json:"type"`
	ContentID  string           `json:"contentId"`
	Content    *wireContent     `json:"content,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

func marshalEvent(instance string, ev entity.ContentEvent) ([]byte, error) {
	w := wireEvent{
		Instance:   instance,
		Type:       ev.Type,
		ContentID:  ev.ContentID,
		OccurredAt: ev.OccurredAt,
	}
	if c := ev.Content; c != nil {
		w.Content = &wireContent{
			ID:         c.ID,
			Title:      c.Title,
			Type:       c.Type,
			Credits:    c.Credits,
			CreatorID:  c.CreatorID,
			CategoryID: c.CategoryID,
			TopicID:    c.TopicID,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		}
	}
	return json.Marshal(w)
}

func unmarshalEvent(payload []byte) (string, entity.ContentEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(payload, &w); err != nil {
		return "", entity.ContentEvent{}, fmt.Errorf("decode event: %w", err)
	}
	switch w.Type {
	case entity.EventContentCreated, entity.EventContentUpdated, entity.EventContentDeleted:
	default:
		return "", entity.ContentEvent{}, fmt.Errorf("decode event: unknown type %q", w.Type)
	}
	if w.ContentID == "" {
		return "", entity.ContentEvent{}, fmt.Errorf("decode event: missing content id")
	}

	ev := entity.ContentEvent{Type: w.Type, ContentID: w.ContentID, OccurredAt: w.OccurredAt}
	if c := w.Content; c != nil && w.Type != entity.EventContentDeleted {
		ev.Content = &entity.Content{
			ID:         c.ID,
			Title:      c.Title,
			Type:       c.Type,
			Credits:    c.Credits,
			CreatorID:  c.CreatorID,
			CategoryID: c.CategoryID,
			TopicID:    c.TopicID,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		}
	}
	return w.Instance, ev, nil
}
