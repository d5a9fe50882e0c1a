package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/robfig/cron/v3"
)

// MinJWTSecretLength is 256 bits.
const MinJWTSecretLength = 32

// よくある弱い秘密鍵のプレフィックス
var weakSecretPrefixes = []string{"secret", "password", "changeme", "change-me", "your-secret", "default"}

// Validate checks cross-field constraints that tags cannot express.
func (c *AppConfig) Validate() error {
	var errs []error

	if err := ValidateJWTSecret(c.Auth.JWTSecret); err != nil {
		errs = append(errs, err)
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Auth.LoginRateLimit <= 0 || c.Auth.LoginWindow <= 0 {
		errs = append(errs, errors.New("auth login rate limit must be positive"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Realtime.Enabled {
		if c.Realtime.Port <= 0 || c.Realtime.Port > 65535 {
			errs = append(errs, fmt.Errorf("realtime.port must be between 1 and 65535, got %d", c.Realtime.Port))
		}
		if c.Realtime.Port == c.Server.Port {
			errs = append(errs, errors.New("realtime.port must differ from server.port"))
		}
		if !strings.HasPrefix(c.Realtime.Path, "/") {
			errs = append(errs, errors.New("realtime.path must start with /"))
		}
		if c.Realtime.QueryRPS <= 0 || c.Realtime.QueryBurst <= 0 {
			errs = append(errs, errors.New("realtime query rate limit must be positive"))
		}
	}
	if c.Database.MaxOpenConns <= 0 {
		errs = append(errs, errors.New("database.max_open_conns must be positive"))
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, errors.New("database.max_idle_conns cannot be greater than max_open_conns"))
	}
	if c.Notify.MaxConcurrent <= 0 {
		errs = append(errs, errors.New("notify.max_concurrent must be positive"))
	}
	if c.Stats.Enabled {
		if err := ValidateCronSchedule(c.Stats.Schedule); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ValidateJWTSecret enforces minimum length and rejects placeholder secrets.
func ValidateJWTSecret(secret string) error {
	if secret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	// セキュリティ: 最小32文字（256ビット）を強制
	if len(secret) < MinJWTSecretLength {
		return fmt.Errorf("auth.jwt_secret must be at least %d characters", MinJWTSecretLength)
	}
	lower := strings.ToLower(secret)
	for _, weak := range weakSecretPrefixes {
		if strings.HasPrefix(lower, weak) {
			return fmt.Errorf("auth.jwt_secret must not be a common placeholder value")
		}
	}
	return nil
}

// ValidateCronSchedule accepts five-field expressions and descriptors such as "@every 1m",
// matching what the stats refresher's scheduler parses.
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return errors.New("stats.schedule cannot be empty")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("stats.schedule %q is invalid: %w", schedule, err)
	}
	return nil
}

// ParseLogLevel maps a level name to slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", level)
}
