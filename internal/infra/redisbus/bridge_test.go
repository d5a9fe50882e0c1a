package redisbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-hub/internal/config"
	"content-hub/internal/domain/entity"
)

type recordingSink struct {
	mu     sync.Mutex
	events []entity.ContentEvent
	err    error
}

func (s *recordingSink) Send(_ context.Context, ev entity.ContentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) received() []entity.ContentEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.ContentEvent(nil), s.events...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWire_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &entity.Content{
		ID: "c1", Title: "Aurora", Type: "IMAGE", Credits: "NASA",
		CreatorID: "u1", CategoryID: "cat", TopicID: "top",
		CreatedAt: now, UpdatedAt: now,
	}
	ev := entity.ContentEvent{Type: entity.EventContentUpdated, ContentID: "c1", Content: c, OccurredAt: now}

	payload, err := marshalEvent("inst-1", ev)
	require.NoError(t, err)

	instance, got, err := unmarshalEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "inst-1", instance)
	if diff := cmp.Diff(ev, got); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}
}

func TestWire_DeletedCarriesIDOnly(t *testing.T) {
	payload, err := marshalEvent("inst-1", entity.NewContentDeletedEvent("c7"))
	require.NoError(t, err)
	assert.NotContains(t, string(payload), `"content"`)

	_, got, err := unmarshalEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, entity.EventContentDeleted, got.Type)
	assert.Equal(t, "c7", got.ContentID)
	assert.Nil(t, got.Content)
}

func TestWire_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `nope`},
		{"unknown type", `{"instance":"a","type":"contentArchived","contentId":"c1"}`},
		{"missing id", `{"instance":"a","type":"contentDeleted"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := unmarshalEvent([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}

func TestBridge_Forward(t *testing.T) {
	b := NewBridge(nil, "events", discardLogger())

	own, err := marshalEvent(b.InstanceID(), entity.NewContentDeletedEvent("mine"))
	require.NoError(t, err)
	foreign, err := marshalEvent("other", entity.NewContentDeletedEvent("theirs"))
	require.NoError(t, err)

	sink := &recordingSink{}
	b.forward(context.Background(), sink, own)
	b.forward(context.Background(), sink, []byte(`garbage`))
	b.forward(context.Background(), sink, foreign)

	got := sink.received()
	require.Len(t, got, 1)
	assert.Equal(t, "theirs", got[0].ContentID)

	// sink のエラーは握りつぶす
	sink.err = errors.New("hub closed")
	b.forward(context.Background(), sink, foreign)
	assert.Len(t, sink.received(), 2)
}

func TestBridge_Identity(t *testing.T) {
	a := NewBridge(nil, "events", discardLogger())
	b := NewBridge(nil, "events", discardLogger())

	assert.Equal(t, "redis", a.Name())
	assert.False(t, a.IsEnabled())
	assert.NotEqual(t, a.InstanceID(), b.InstanceID())
}

func TestNewClient_Disabled(t *testing.T) {
	client, err := NewClient(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient(context.Background(), config.RedisConfig{URL: "://nope"})
	assert.Error(t, err)
}
