package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"content-hub/internal/handler/http/requestid"
	"content-hub/internal/handler/http/respond"
	authservice "content-hub/internal/service/auth"
)

type ctxKey string

const ctxPrincipal ctxKey = "principal"

// TokenParser validates a bearer token.
type TokenParser interface {
	Parse(token string) (*authservice.Principal, error)
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *authservice.Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

// PrincipalFrom returns the authenticated caller, if any.
func PrincipalFrom(ctx context.Context) (*authservice.Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(*authservice.Principal)
	return p, ok && p != nil
}

// Authz requires a valid bearer token on every non-public endpoint and checks the
// caller's role against RolePermissions for the request method and path.
//
//   - missing or invalid token: 401
//   - role without permission: 403
func Authz(parser TokenParser, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := parseBearer(parser, r.Header.Get("Authorization"))
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
				return
			}

			start := time.Now()
			allowed := checkRolePermission(principal.Role, r.Method, r.URL.Path)
			RecordAuthzCheckDuration(time.Since(start).Seconds())
			if !allowed {
				RecordForbiddenAttempt(string(principal.Role), r.Method)
				logger.Warn("forbidden",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("user_id", principal.UserID),
					slog.String("role", string(principal.Role)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))
				respond.SafeError(w, http.StatusForbidden, errors.New("forbidden"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func parseBearer(parser TokenParser, header string) (*authservice.Principal, error) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return nil, errors.New("missing bearer token")
	}
	return parser.Parse(strings.TrimSpace(header[len(prefix):]))
}
