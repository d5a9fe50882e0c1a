package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"content-hub/internal/config"
	"content-hub/internal/domain/entity"
	"content-hub/internal/repository"
	authservice "content-hub/internal/service/auth"
)

// ErrHubClosed is returned by Send after Close.
var ErrHubClosed = errors.New("realtime hub closed")

const queryTimeout = 10 * time.Second

// Querier answers the read queries clients may send.
type Querier interface {
	List(ctx context.Context) ([]*entity.Content, error)
	Search(ctx context.Context, filters repository.ContentSearchFilters) ([]*entity.Content, error)
	CountByCategory(ctx context.Context, topicID *string) ([]entity.CategoryCount, error)
}

// TokenParser validates the optional ?token= query parameter.
type TokenParser interface {
	Parse(token string) (*authservice.Principal, error)
}

// Hub tracks connected clients and broadcasts content events to them.
// It implements notify.Channel.
type Hub struct {
	querier  Querier
	tokens   TokenParser
	cfg      config.RealtimeConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a hub. tokens may be nil, in which case ?token= is ignored.
func NewHub(querier Querier, tokens TokenParser, cfg config.RealtimeConfig, logger *slog.Logger) *Hub {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 32
	}
	if cfg.QueryBurst <= 0 {
		cfg.QueryBurst = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		querier: querier,
		tokens:  tokens,
		cfg:     cfg,
		logger:  logger,
		clients: make(map[*client]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.cfg.AllowedOrigins == "" || h.cfg.AllowedOrigins == "*" {
		return true
	}
	for _, allowed := range strings.Split(h.cfg.AllowedOrigins, ",") {
		if strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}

// Name implements notify.Channel.
func (h *Hub) Name() string { return "websocket" }

// IsEnabled implements notify.Channel.
func (h *Hub) IsEnabled() bool { return h.cfg.Enabled }

// Send broadcasts event to every connected client. Slow clients whose buffer
// is full are disconnected rather than waited on.
func (h *Hub) Send(ctx context.Context, event entity.ContentEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := encodeContentEvent(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return ErrHubClosed
	}
	var (
		slow      []*client
		delivered int
	)
	for c := range h.clients {
		if c.closing() {
			continue
		}
		if c.enqueue(msg) {
			delivered++
		} else {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	messagesTotal.WithLabelValues("out", string(event.Type)).Add(float64(delivered))
	for _, c := range slow {
		droppedTotal.WithLabelValues("slow_client").Inc()
		h.logger.Warn("realtime client too slow, disconnecting", slog.String("client_id", c.id))
		c.close()
	}
	return nil
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and runs the client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var userID string
	if tok := r.URL.Query().Get("token"); tok != "" && h.tokens != nil {
		p, err := h.tokens.Parse(tok)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		userID = p.UserID
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade は既にエラーレスポンスを書いている
		h.logger.Debug("websocket upgrade failed", slog.Any("error", err))
		return
	}

	c := newClient(h, conn, uuid.NewString())
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	h.logger.Info("realtime client connected",
		slog.String("client_id", c.id),
		slog.String("user_id", userID),
		slog.String("remote_addr", r.RemoteAddr))

	go c.writePump()
	c.readPump()
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	connectionsActive.Inc()
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		connectionsActive.Dec()
		h.logger.Info("realtime client disconnected", slog.String("client_id", c.id))
	}
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	h.cancel()
	for _, c := range clients {
		c.close()
	}
}
