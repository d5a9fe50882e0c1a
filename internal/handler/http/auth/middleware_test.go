package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-hub/internal/domain/entity"
	authservice "content-hub/internal/service/auth"
)

// fakeParser maps tokens to principals.
type fakeParser map[string]*authservice.Principal

func (f fakeParser) Parse(token string) (*authservice.Principal, error) {
	p, ok := f[token]
	if !ok {
		return nil, authservice.ErrInvalidToken
	}
	return p, nil
}

var testParser = fakeParser{
	"admin-token":   {UserID: "u-admin", Role: entity.UserTypeAdmin},
	"creator-token": {UserID: "u-creator", Role: entity.UserTypeCreator},
	"reader-token":  {UserID: "u-reader", Role: entity.UserTypeReader},
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newProtected(t *testing.T) (http.Handler, **authservice.Principal) {
	t.Helper()
	var seen *authservice.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Authz(testParser, discardLogger())(next), &seen
}

func TestAuthz_PublicEndpoints(t *testing.T) {
	h, _ := newProtected(t)

	for _, path := range []string{"/health", "/ready", "/live", "/metrics", "/swagger/index.html", "/auth/login", "/users/register"} {
		t.Run(path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, nil))
			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestAuthz_Unauthorized(t *testing.T) {
	h, _ := newProtected(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"unknown token", "Bearer nope"},
		{"empty bearer", "Bearer "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/content", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Contains(t, rr.Body.String(), "unauthorized")
		})
	}
}

func TestAuthz_RoleGates(t *testing.T) {
	h, seen := newProtected(t)

	tests := []struct {
		token  string
		method string
		path   string
		want   int
	}{
		{"reader-token", http.MethodGet, "/content", http.StatusOK},
		{"reader-token", http.MethodGet, "/content/count-by-category", http.StatusOK},
		{"reader-token", http.MethodGet, "/topics/t1/categories", http.StatusOK},
		{"reader-token", http.MethodPost, "/content", http.StatusForbidden},
		{"reader-token", http.MethodGet, "/users", http.StatusForbidden},
		{"creator-token", http.MethodPost, "/content", http.StatusOK},
		{"creator-token", http.MethodPatch, "/content/c1", http.StatusOK},
		{"creator-token", http.MethodDelete, "/content/c1", http.StatusForbidden},
		{"creator-token", http.MethodPost, "/categories", http.StatusForbidden},
		{"admin-token", http.MethodDelete, "/content/c1", http.StatusOK},
		{"admin-token", http.MethodGet, "/users/u1", http.StatusOK},
		{"admin-token", http.MethodPost, "/topics/t1/categories", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.token+" "+tt.method+" "+tt.path, func(t *testing.T) {
			*seen = nil
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusOK {
				require.NotNil(t, *seen)
				assert.Equal(t, testParser[tt.token].UserID, (*seen).UserID)
			}
		})
	}
}

func TestPrincipalFrom_Empty(t *testing.T) {
	_, ok := PrincipalFrom(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestParseBearer_CaseInsensitivePrefix(t *testing.T) {
	p, err := parseBearer(testParser, "bearer admin-token")
	require.NoError(t, err)
	assert.Equal(t, entity.UserTypeAdmin, p.Role)

	_, err = parseBearer(testParser, "Token admin-token")
	assert.True(t, err != nil && !errors.Is(err, authservice.ErrInvalidToken))
}
