package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-hub/internal/config"
	"content-hub/internal/domain/entity"
	"content-hub/internal/handler/http/requestid"
)

/* ───────── モックチャンネル ───────── */

type mockChannel struct {
	name    string
	enabled bool
	err     error
	delay   time.Duration
	panics  bool

	mu       sync.Mutex
	events   []entity.ContentEvent
	reqIDs   []string
	sendDone chan struct{}
}

func newMock(name string) *mockChannel {
	return &mockChannel{name: name, enabled: true, sendDone: make(chan struct{}, 100)}
}

func (m *mockChannel) Name() string    { return m.name }
func (m *mockChannel) IsEnabled() bool { return m.enabled }

func (m *mockChannel) Send(ctx context.Context, ev entity.ContentEvent) error {
	defer func() { m.sendDone <- struct{}{} }()
	if m.panics {
		panic("boom")
	}
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.mu.Lock()
	m.events = append(m.events, ev)
	m.reqIDs = append(m.reqIDs, requestid.FromContext(ctx))
	m.mu.Unlock()
	return m.err
}

func (m *mockChannel) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func waitSends(t *testing.T, m *mockChannel, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-m.sendDone:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for send %d on %s", i+1, m.name)
		}
	}
}

func testConfig() config.NotifyConfig {
	return config.NotifyConfig{MaxConcurrent: 4, SendTimeout: time.Second}
}

func createdEvent(id string) entity.ContentEvent {
	return entity.NewContentEvent(entity.EventContentCreated, &entity.Content{ID: id, Title: "t"})
}

/* ───────── テスト ───────── */

func TestDispatcher_FansOutToEnabledChannels(t *testing.T) {
	hub := newMock("hub")
	redis := newMock("redis")
	off := newMock("off")
	off.enabled = false
	d := NewDispatcher([]Channel{hub, redis, off}, testConfig(), nil)

	ctx := requestid.WithRequestID(context.Background(), "req-1")
	require.NoError(t, d.Publish(ctx, createdEvent("c-1")))

	waitSends(t, hub, 1)
	waitSends(t, redis, 1)
	require.NoError(t, d.Shutdown(context.Background()))

	assert.Equal(t, 1, hub.count())
	assert.Equal(t, 1, redis.count())
	assert.Equal(t, 0, off.count())
	assert.Equal(t, []string{"req-1"}, hub.reqIDs)
	assert.Equal(t, "c-1", hub.events[0].ContentID)
}

func TestDispatcher_PublishDoesNotWaitForDelivery(t *testing.T) {
	slow := newMock("slow")
	slow.delay = 300 * time.Millisecond
	d := NewDispatcher([]Channel{slow}, testConfig(), nil)

	start := time.Now()
	require.NoError(t, d.Publish(context.Background(), createdEvent("c-1")))
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	waitSends(t, slow, 1)
	require.NoError(t, d.Shutdown(context.Background()))
}

func TestDispatcher_ChannelErrorIsIsolated(t *testing.T) {
	bad := newMock("bad")
	bad.err = errors.New("send failed")
	good := newMock("good")
	d := NewDispatcher([]Channel{bad, good}, testConfig(), nil)

	require.NoError(t, d.Publish(context.Background(), createdEvent("c-1")))
	waitSends(t, bad, 1)
	waitSends(t, good, 1)

	assert.Equal(t, 1, good.count())
}

func TestDispatcher_PanicRecovered(t *testing.T) {
	p := newMock("panicky")
	p.panics = true
	d := NewDispatcher([]Channel{p}, testConfig(), nil)

	require.NoError(t, d.Publish(context.Background(), createdEvent("c-1")))
	waitSends(t, p, 1)
	assert.NoError(t, d.Shutdown(context.Background()))
}

func TestDispatcher_CircuitBreakerOpensAfterFailures(t *testing.T) {
	bad := newMock("flaky")
	bad.err = errors.New("down")
	d := NewDispatcher([]Channel{bad}, testConfig(), nil)

	for i := 0; i < 5; i++ {
		require.NoError(t, d.Publish(context.Background(), createdEvent("c")))
		waitSends(t, bad, 1)
	}
	require.NoError(t, d.Shutdown(context.Background()))

	health := d.ChannelHealth()
	require.Len(t, health, 1)
	assert.Equal(t, "flaky", health[0].Name)
	assert.True(t, health[0].CircuitBreakerOpen)
}

func TestDispatcher_InvalidEvent(t *testing.T) {
	d := NewDispatcher(nil, testConfig(), nil)
	err := d.Publish(context.Background(), entity.ContentEvent{Type: entity.EventContentDeleted})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestDispatcher_PublishAfterShutdown(t *testing.T) {
	ch := newMock("hub")
	d := NewDispatcher([]Channel{ch}, testConfig(), nil)
	require.NoError(t, d.Shutdown(context.Background()))

	err := d.Publish(context.Background(), createdEvent("c-1"))
	assert.ErrorIs(t, err, ErrDispatcherClosed)
	assert.Equal(t, 0, ch.count())
}

func TestDispatcher_ShutdownTimeout(t *testing.T) {
	ch := &blockingChannel{release: make(chan struct{}), started: make(chan struct{})}
	d := NewDispatcher([]Channel{ch}, config.NotifyConfig{MaxConcurrent: 1}, nil)

	require.NoError(t, d.Publish(context.Background(), createdEvent("c-1")))
	<-ch.started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Shutdown(ctx), context.DeadlineExceeded)
	close(ch.release)
}

// blockingChannel ignores cancellation until released.
type blockingChannel struct {
	release chan struct{}
	started chan struct{}
}

func (b *blockingChannel) Name() string    { return "blocking" }
func (b *blockingChannel) IsEnabled() bool { return true }
func (b *blockingChannel) Send(context.Context, entity.ContentEvent) error {
	close(b.started)
	<-b.release
	return nil
}
