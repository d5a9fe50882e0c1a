package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	httpcontent "content-hub/internal/handler/http/content"
	"content-hub/internal/handler/http/respond"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
)

type client struct {
	hub     *Hub
	conn    *websocket.Conn
	id      string
	send    chan []byte
	limiter *rate.Limiter

	done      chan struct{}
	closeOnce sync.Once
}

func newClient(h *Hub, conn *websocket.Conn, id string) *client {
	return &client{
		hub:     h,
		conn:    conn,
		id:      id,
		send:    make(chan []byte, h.cfg.SendBuffer),
		limiter: rate.NewLimiter(rate.Limit(h.cfg.QueryRPS), h.cfg.QueryBurst),
		done:    make(chan struct{}),
	}
}

func (c *client) closing() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// enqueue queues msg without blocking. It reports false when the client is
// closing or its buffer is full.
func (c *client) enqueue(msg []byte) bool {
	if c.closing() {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.hub.unregister(c)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		_ = c.conn.Close()
	})
}

func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.hub.logger.Debug("realtime read failed", slog.String("client_id", c.id), slog.Any("error", err))
			}
			return
		}
		c.handle(raw)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// handle answers one inbound frame. Every query gets exactly one reply.
func (c *client) handle(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
		c.reply(encodeError("invalid message"))
		return
	}
	messagesTotal.WithLabelValues("in", inboundLabel(env.Event)).Inc()

	if !c.limiter.Allow() {
		droppedTotal.WithLabelValues("rate_limited").Inc()
		c.reply(encodeError("rate limit exceeded"))
		return
	}

	ctx, cancel := context.WithTimeout(c.hub.ctx, queryTimeout)
	defer cancel()

	var (
		msg []byte
		err error
	)
	switch env.Event {
	case EventGetContents:
		msg, err = c.getContents(ctx, env.Data)
	case EventGetContentCountByCategory:
		msg, err = c.getCountByCategory(ctx, env.Data)
	default:
		c.reply(encodeError("unknown event: " + env.Event))
		return
	}
	if err != nil {
		c.hub.logger.Warn("realtime query failed",
			slog.String("client_id", c.id),
			slog.String("event", env.Event),
			slog.String("error", respond.SanitizeError(err)))
		c.reply(encodeError(queryErrorMessage(err)))
		return
	}
	c.reply(msg)
}

func (c *client) reply(msg []byte) {
	if c.closing() {
		return
	}
	if !c.enqueue(msg) {
		droppedTotal.WithLabelValues("slow_client").Inc()
	}
}

func (c *client) getContents(ctx context.Context, data json.RawMessage) ([]byte, error) {
	var q httpcontent.SearchQuery
	if err := decodeData(data, &q); err != nil {
		return nil, err
	}

	if q.Empty() {
		list, err := c.hub.querier.List(ctx)
		if err != nil {
			return nil, err
		}
		return encode(EventContents, httpcontent.ToDTOs(list))
	}

	filters, err := q.Filters()
	if err != nil {
		return nil, &badRequest{err}
	}
	list, err := c.hub.querier.Search(ctx, filters)
	if err != nil {
		return nil, err
	}
	return encode(EventContents, httpcontent.ToDTOs(list))
}

func (c *client) getCountByCategory(ctx context.Context, data json.RawMessage) ([]byte, error) {
	var q countQuery
	if err := decodeData(data, &q); err != nil {
		return nil, err
	}
	var topicID *string
	if q.TopicID != "" {
		topicID = &q.TopicID
	}
	counts, err := c.hub.querier.CountByCategory(ctx, topicID)
	if err != nil {
		return nil, err
	}
	return encode(EventContentCountByCategory, httpcontent.ToCountDTOs(counts))
}

// inboundLabel maps client supplied event names onto a fixed label set.
func inboundLabel(event string) string {
	switch event {
	case EventGetContents, EventGetContentCountByCategory:
		return event
	}
	return "unknown"
}

// badRequest marks client input errors whose message is safe to return.
type badRequest struct{ err error }

func (e *badRequest) Error() string { return e.err.Error() }

func decodeData(data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &badRequest{err}
	}
	return nil
}

func queryErrorMessage(err error) string {
	var br *badRequest
	if errors.As(err, &br) {
		return "invalid query: " + br.Error()
	}
	return "query failed"
}
