package notify

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"content-hub/internal/config"
	"content-hub/internal/domain/entity"
	"content-hub/internal/handler/http/requestid"
	"content-hub/internal/resilience/circuitbreaker"
)

// workerPoolTimeout bounds how long a send waits for a free worker slot.
const workerPoolTimeout = 5 * time.Second

// ChannelHealthStatus represents the health status of a notification channel.
type ChannelHealthStatus struct {
	Name               string `json:"name"`
	Enabled            bool   `json:"enabled"`
	CircuitBreakerOpen bool   `json:"circuit_breaker_open"`
}

// Dispatcher implements the content Publisher over a set of channels.
// Publish never blocks on delivery: each enabled channel gets its own goroutine,
// bounded by a semaphore of MaxConcurrent slots.
type Dispatcher struct {
	channels    []Channel
	breakers    map[string]*circuitbreaker.CircuitBreaker
	workerPool  chan struct{}
	sendTimeout time.Duration
	logger      *slog.Logger

	wg             sync.WaitGroup
	mu             sync.RWMutex // guards closed against concurrent wg.Add
	closed         bool
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewDispatcher creates a dispatcher for channels.
func NewDispatcher(channels []Channel, cfg config.NotifyConfig, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		channels:       channels,
		breakers:       make(map[string]*circuitbreaker.CircuitBreaker, len(channels)),
		workerPool:     make(chan struct{}, maxConcurrent),
		sendTimeout:    cfg.SendTimeout,
		logger:         logger,
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}

	enabled := 0
	for _, ch := range channels {
		cbCfg := circuitbreaker.ChannelConfig("notify-" + ch.Name())
		name := ch.Name()
		cbCfg.OnStateChange = func(_ string, _, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				RecordCircuitBreakerOpen(name)
			}
		}
		d.breakers[name] = circuitbreaker.New(cbCfg)
		if ch.IsEnabled() {
			enabled++
		}
	}
	SetChannelsEnabled(enabled)

	return d
}

// Publish hands event to every enabled channel and returns immediately.
// It only fails for malformed events or after Shutdown.
func (d *Dispatcher) Publish(ctx context.Context, event entity.ContentEvent) error {
	if event.Type == "" || event.ContentID == "" {
		return ErrInvalidEvent
	}

	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	for _, ch := range d.channels {
		if !ch.IsEnabled() {
			continue
		}
		d.wg.Add(1)
		go d.send(reqID, ch, event)
	}
	return nil
}

// send delivers event to one channel.
func (d *Dispatcher) send(reqID string, ch Channel, event entity.ContentEvent) {
	defer d.wg.Done()

	activeNotifications.Inc()
	defer activeNotifications.Dec()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic in notification channel",
				slog.String("request_id", reqID),
				slog.String("channel", ch.Name()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	// ワーカースロット確保
	timer := time.NewTimer(workerPoolTimeout)
	defer timer.Stop()
	select {
	case d.workerPool <- struct{}{}:
		defer func() { <-d.workerPool }()
	case <-timer.C:
		d.logger.Warn("content event dropped: worker pool full",
			slog.String("request_id", reqID),
			slog.String("channel", ch.Name()))
		RecordDropped(ch.Name(), "pool_full")
		return
	case <-d.shutdownCtx.Done():
		RecordDropped(ch.Name(), "shutdown")
		return
	}

	ctx := requestid.WithRequestID(d.shutdownCtx, reqID)
	if d.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.sendTimeout)
		defer cancel()
	}

	RecordDispatch(ch.Name(), string(event.Type))
	start := time.Now()
	err := d.breakers[ch.Name()].Run(func() error {
		return ch.Send(ctx, event)
	})
	duration := time.Since(start)

	switch {
	case errors.Is(err, circuitbreaker.ErrOpen):
		d.logger.Warn("channel temporarily disabled by circuit breaker",
			slog.String("request_id", reqID),
			slog.String("channel", ch.Name()))
		RecordDropped(ch.Name(), "circuit_open")
	case err != nil:
		RecordFailure(ch.Name(), duration)
		d.logger.Warn("content event send failed",
			slog.String("request_id", reqID),
			slog.String("channel", ch.Name()),
			slog.String("event", string(event.Type)),
			slog.String("content_id", event.ContentID),
			slog.Duration("send_duration", duration),
			slog.Any("error", err))
	default:
		RecordSuccess(ch.Name(), duration)
		d.logger.Debug("content event sent",
			slog.String("request_id", reqID),
			slog.String("channel", ch.Name()),
			slog.String("event", string(event.Type)),
			slog.String("content_id", event.ContentID),
			slog.Duration("send_duration", duration))
	}
}

// ChannelHealth reports per-channel breaker state for health endpoints.
func (d *Dispatcher) ChannelHealth() []ChannelHealthStatus {
	statuses := make([]ChannelHealthStatus, 0, len(d.channels))
	for _, ch := range d.channels {
		statuses = append(statuses, ChannelHealthStatus{
			Name:               ch.Name(),
			Enabled:            ch.IsEnabled(),
			CircuitBreakerOpen: d.breakers[ch.Name()].IsOpen(),
		})
	}
	return statuses
}

// Shutdown stops accepting events and waits for in-flight sends or ctx.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.logger.Info("shutting down notification dispatcher")
	d.shutdownCancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		d.logger.Warn("notification dispatcher shutdown timeout")
		return ctx.Err()
	}
}
