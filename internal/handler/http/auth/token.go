package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"content-hub/internal/domain/entity"
	"content-hub/internal/handler/http/requestid"
	"content-hub/internal/handler/http/respond"
	authservice "content-hub/internal/service/auth"
)

// Authenticator verifies credentials and issues a token.
type Authenticator interface {
	Login(ctx context.Context, creds authservice.Credentials) (string, *entity.User, error)
}

type loginRequest struct {
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"your_password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// LoginHandler authenticates a user by email and password and issues a JWT.
//
// @Summary      ログイン
// @Description  メールアドレスとパスワードで認証し、アクセストークンを発行します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "ログイン情報"
// @Success      200 {object} tokenResponse "アクセストークン"
// @Failure      400 {object} respond.ErrorBody "リクエストが不正"
// @Failure      401 {object} respond.ErrorBody "認証失敗"
// @Failure      429 {object} respond.ErrorBody "Too many requests - rate limit exceeded"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      500 {object} respond.ErrorBody "トークン生成失敗"
// @Router       /auth/login [post]
func LoginHandler(authn Authenticator, limiter *LoginLimiter, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With(slog.String("request_id", requestid.FromContext(r.Context())))

		fail := func(code int, reason string, err error) {
			log.Warn("authentication failed",
				slog.String("reason", reason),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			respond.SafeError(w, code, err)
		}

		if limiter != nil && !limiter.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			fail(http.StatusTooManyRequests, "rate_limited", errors.New("too many login attempts"))
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(http.StatusBadRequest, "invalid_request", errors.New("invalid request body"))
			return
		}

		token, u, err := authn.Login(r.Context(), authservice.Credentials{Email: req.Email, Password: req.Password})
		if err != nil {
			if errors.Is(err, authservice.ErrInvalidCredentials) {
				fail(http.StatusUnauthorized, "invalid_credentials", errors.New("invalid credentials"))
				return
			}
			log.Error("login failed", slog.String("error", respond.SanitizeError(err)))
			RecordAuthRequest("unknown", "failure")
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		role := string(u.UserType)
		log.Info("authentication successful",
			slog.String("user_id", u.ID),
			slog.String("role", role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest(role, "success")
		RecordAuthDuration(role, time.Since(start).Seconds())

		respond.JSON(w, http.StatusOK, tokenResponse{AccessToken: token})
	}
}
