package redisbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"content-hub/internal/domain/entity"
	"content-hub/internal/handler/http/respond"
	"content-hub/internal/resilience/retry"
)

// Sink receives events published by other instances. The websocket hub is one.
type Sink interface {
	Send(ctx context.Context, event entity.ContentEvent) error
}

// Bridge publishes local events to a Redis channel and forwards events from
// other instances to a local Sink. It implements notify.Channel.
type Bridge struct {
	client     *redis.Client
	channel    string
	instanceID string
	retry      retry.Config
	logger     *slog.Logger
}

// NewBridge creates a bridge on channel. Each bridge gets a fresh instance id
// so it can recognise and skip its own messages.
func NewBridge(client *redis.Client, channel string, logger *slog.Logger) *Bridge {
	return &Bridge{
		client:     client,
		channel:    channel,
		instanceID: uuid.NewString(),
		retry:      retry.RedisConfig(),
		logger:     logger,
	}
}

// InstanceID returns the id stamped on outgoing messages.
func (b *Bridge) InstanceID() string { return b.instanceID }

// Name implements notify.Channel.
func (b *Bridge) Name() string { return "redis" }

// IsEnabled implements notify.Channel.
func (b *Bridge) IsEnabled() bool { return b.client != nil }

// Send publishes event, retrying transient failures.
func (b *Bridge) Send(ctx context.Context, event entity.ContentEvent) error {
	payload, err := marshalEvent(b.instanceID, event)
	if err != nil {
		publishedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("encode event: %w", err)
	}

	err = retry.WithBackoff(ctx, b.retry, func() error {
		return b.client.Publish(ctx, b.channel, payload).Err()
	})
	if err != nil {
		publishedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("redis publish: %w", err)
	}
	publishedTotal.WithLabelValues("success").Inc()
	return nil
}

// Run subscribes to the channel and forwards foreign events to sink until ctx
// is cancelled. It returns after the subscription is confirmed or fails.
func (b *Bridge) Run(ctx context.Context, sink Sink) error {
	sub := b.client.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	b.logger.Info("redis bridge subscribed",
		slog.String("channel", b.channel),
		slog.String("instance_id", b.instanceID))

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				b.forward(ctx, sink, []byte(msg.Payload))
			}
		}
	}()
	return nil
}

func (b *Bridge) forward(ctx context.Context, sink Sink, payload []byte) {
	instance, ev, err := unmarshalEvent(payload)
	if err != nil {
		receivedTotal.WithLabelValues("invalid").Inc()
		b.logger.Warn("redis bridge dropped message", slog.Any("error", err))
		return
	}
	if instance == b.instanceID {
		receivedTotal.WithLabelValues("own").Inc()
		return
	}
	if err := sink.Send(ctx, ev); err != nil {
		receivedTotal.WithLabelValues("failed").Inc()
		b.logger.Warn("redis bridge forward failed",
			slog.String("event", string(ev.Type)),
			slog.String("content_id", ev.ContentID),
			slog.String("error", respond.SanitizeError(err)))
		return
	}
	receivedTotal.WithLabelValues("forwarded").Inc()
}

// Health pings Redis.
func (b *Bridge) Health(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
