// Package http holds the cross-cutting HTTP layer of the API server: health
// probes, request metrics and the middleware chain wrapped around the routes
// registered by the resource subpackages.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"content-hub/internal/handler/http/respond"
	"content-hub/internal/usecase/notify"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string         `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ChannelHealthReporter exposes the state of the notification channels.
type ChannelHealthReporter interface {
	ChannelHealth() []notify.ChannelHealthStatus
}

// Pinger is an optional dependency checked by the health endpoint.
type Pinger interface {
	Health(ctx context.Context) error
}

// HealthHandler reports database, notification channel and optional
// dependency health. Only the database decides the overall status; an open
// circuit breaker or an unreachable optional dependency is reported as degraded.
type HealthHandler struct {
	DB       *sql.DB
	Version  string
	Channels ChannelHealthReporter
	Optional map[string]Pinger
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	healthy := true

	if h.DB != nil {
		db := h.checkDatabase(ctx)
		checks["database"] = db
		healthy = db.Status != "unhealthy"
	} else {
		checks["database"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
		healthy = false
	}

	if h.Channels != nil {
		checks["notify"] = h.checkChannels()
	}

	for name, p := range h.Optional {
		if err := p.Health(ctx); err != nil {
			checks[name] = CheckStatus{Status: "degraded", Message: respond.SanitizeError(err)}
			continue
		}
		checks[name] = CheckStatus{Status: "healthy"}
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}
	code := http.StatusOK
	if !healthy {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, resp)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: respond.SanitizeError(err)}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	if stats.MaxOpenConnections == 0 {
		return CheckStatus{Status: "degraded", Message: "connection pool max connections not configured", Details: details}
	}
	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{Status: "degraded", Message: "connection pool utilization above 80%", Details: details}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

func (h *HealthHandler) checkChannels() CheckStatus {
	statuses := h.Channels.ChannelHealth()
	details := make(map[string]any, len(statuses))
	status := "healthy"
	for _, s := range statuses {
		details[s.Name] = s
		if s.Enabled && s.CircuitBreakerOpen {
			status = "degraded"
		}
	}
	return CheckStatus{Status: status, Details: details}
}

// ReadyHandler is the readiness probe. It pings the database.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler is the liveness probe.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("alive"))
}

// RegisterProbes mounts the health, readiness, liveness and metrics endpoints.
func RegisterProbes(mux *http.ServeMux, health *HealthHandler) {
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", &ReadyHandler{DB: health.DB})
	mux.Handle("GET /live", LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())
}
