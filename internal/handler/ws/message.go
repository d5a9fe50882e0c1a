// Package ws serves the realtime content channel over websocket.
//
// Every frame is a JSON envelope {"event": "...", "data": ...}. Clients send
// getContents and getContentCountByCategory queries and receive exactly one
// reply each; contentCreated, contentUpdated and contentDeleted are pushed to
// every connected client as they happen. There is no replay and no ack.
package ws

import (
	"encoding/json"

	"content-hub/internal/domain/entity"
	httpcontent "content-hub/internal/handler/http/content"
)

// Inbound and outbound event names.
const (
	EventGetContents               = "getContents"
	EventGetContentCountByCategory = "getContentCountByCategory"
	EventContents                  = "contents"
	EventContentCountByCategory    = "contentCountByCategory"
	EventError                     = "error"
)

// Envelope is the wire frame in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type errorData struct {
	Message string `json:"message"`
}

type deletedData struct {
	ID string `json:"id"`
}

type countQuery struct {
	TopicID string `json:"topicId"`
}

func encode(event string, data any) ([]byte, error) {
	return json.Marshal(outbound{Event: event, Data: data})
}

func encodeError(msg string) []byte {
	// errorData は常にエンコード可能
	b, _ := encode(EventError, errorData{Message: msg})
	return b
}

// encodeContentEvent renders a change event. Deletions carry only the id.
func encodeContentEvent(ev entity.ContentEvent) ([]byte, error) {
	if ev.Type == entity.EventContentDeleted || ev.Content == nil {
		return encode(string(ev.Type), deletedData{ID: ev.ContentID})
	}
	return encode(string(ev.Type), httpcontent.ToDTO(ev.Content))
}
