package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-hub/internal/usecase/notify"
)

type stubChannels []notify.ChannelHealthStatus

func (s stubChannels) ChannelHealth() []notify.ChannelHealthStatus { return s }

type stubPinger struct{ err error }

func (p stubPinger) Health(context.Context) error { return p.err }

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func serveHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	return rec.Code, resp
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(sqlmock.Sqlmock)
		expectedStatus int
		expectHealthy  bool
	}{
		{
			name:           "healthy database",
			setupMock:      func(mock sqlmock.Sqlmock) { mock.ExpectPing() },
			expectedStatus: http.StatusOK,
			expectHealthy:  true,
		},
		{
			name: "database connection error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(sql.ErrConnDone)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectHealthy:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			db.SetMaxOpenConns(10)
			tt.setupMock(mock)

			code, resp := serveHealth(t, &HealthHandler{DB: db, Version: "test-version"})

			assert.Equal(t, tt.expectedStatus, code)
			if tt.expectHealthy {
				assert.Equal(t, "healthy", resp.Status)
				assert.Contains(t, resp.Checks["database"].Details, "utilization_percent")
			} else {
				assert.Equal(t, "unhealthy", resp.Status)
			}
			assert.Equal(t, "test-version", resp.Version)
			assert.NotEmpty(t, resp.Timestamp)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthHandler_NoDatabaseConfigured(t *testing.T) {
	code, resp := serveHealth(t, &HealthHandler{Version: "v"})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "not configured", resp.Checks["database"].Message)
}

func TestHealthHandler_MaxOpenConnectionsZero(t *testing.T) {
	db, mock := newMockDB(t)
	db.SetMaxOpenConns(0)
	mock.ExpectPing()

	code, resp := serveHealth(t, &HealthHandler{DB: db})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	dbCheck := resp.Checks["database"]
	assert.Equal(t, "degraded", dbCheck.Status)
	assert.NotContains(t, dbCheck.Details, "utilization_percent")
}

func TestHealthHandler_Channels(t *testing.T) {
	tests := []struct {
		name     string
		channels stubChannels
		want     string
	}{
		{
			name: "all closed",
			channels: stubChannels{
				{Name: "websocket", Enabled: true},
				{Name: "redis", Enabled: true},
			},
			want: "healthy",
		},
		{
			name: "open breaker degrades",
			channels: stubChannels{
				{Name: "websocket", Enabled: true},
				{Name: "redis", Enabled: true, CircuitBreakerOpen: true},
			},
			want: "degraded",
		},
		{
			name: "disabled channel ignored",
			channels: stubChannels{
				{Name: "redis", Enabled: false, CircuitBreakerOpen: true},
			},
			want: "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			db.SetMaxOpenConns(5)
			mock.ExpectPing()

			code, resp := serveHealth(t, &HealthHandler{DB: db, Channels: tt.channels})

			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, tt.want, resp.Checks["notify"].Status)
			assert.Len(t, resp.Checks["notify"].Details, len(tt.channels))
		})
	}
}

func TestHealthHandler_OptionalDependency(t *testing.T) {
	db, mock := newMockDB(t)
	db.SetMaxOpenConns(5)
	mock.ExpectPing()

	code, resp := serveHealth(t, &HealthHandler{
		DB:       db,
		Optional: map[string]Pinger{"redis": stubPinger{err: errors.New("dial tcp: connection refused")}},
	})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "degraded", resp.Checks["redis"].Status)
}

func TestReadyHandler(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing()

		rec := httptest.NewRecorder()
		(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", rec.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing().WillReturnError(errors.New("password authentication failed for user app"))

		rec := httptest.NewRecorder()
		(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("not configured", func(t *testing.T) {
		rec := httptest.NewRecorder()
		(&ReadyHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestRegisterProbes(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing()

	mux := http.NewServeMux()
	RegisterProbes(mux, &HealthHandler{DB: db})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
