// Package config holds the application configuration loaded from YAML and environment.
package config

import "time"

// AppConfig is the root configuration of the api and admin binaries.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Realtime RealtimeConfig `yaml:"realtime"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Notify   NotifyConfig   `yaml:"notify"`
	Stats    StatsConfig    `yaml:"stats"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP API server settings.
type ServerConfig struct {
	Host              string        `yaml:"host"                env:"SERVER_HOST"                env-default:"0.0.0.0"`
	Port              int           `yaml:"port"                env:"SERVER_PORT"                env-default:"8080"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"SERVER_READ_HEADER_TIMEOUT" env-default:"10s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"SERVER_SHUTDOWN_TIMEOUT"    env-default:"5s"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"      env:"SERVER_MAX_BODY_BYTES"      env-default:"1048576"`
	Version           string        `yaml:"version"             env:"VERSION"                    env-default:"dev"`
}

// RealtimeConfig holds the websocket listener settings.
type RealtimeConfig struct {
	Enabled        bool    `yaml:"enabled"         env:"REALTIME_ENABLED"          env-default:"true"`
	Port           int     `yaml:"port"            env:"REALTIME_PORT"             env-default:"3001"`
	Path           string  `yaml:"path"            env:"REALTIME_PATH"             env-default:"/contents"`
	QueryRPS       float64 `yaml:"query_rps"       env:"REALTIME_QUERY_RPS"        env-default:"5"`
	QueryBurst     int     `yaml:"query_burst"     env:"REALTIME_QUERY_BURST"      env-default:"10"`
	SendBuffer     int     `yaml:"send_buffer"     env:"REALTIME_SEND_BUFFER"      env-default:"32"`
	AllowedOrigins string  `yaml:"allowed_origins" env:"REALTIME_ALLOWED_ORIGINS"  env-default:"*"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL             string        `yaml:"url"                env:"DATABASE_URL"          env-required:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns"     env:"DB_MAX_OPEN_CONNS"     env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns"     env:"DB_MAX_IDLE_CONNS"     env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"  env:"DB_CONN_MAX_LIFETIME"  env-default:"1h"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DB_AUTO_MIGRATE"       env-default:"true"`
}

// RedisConfig holds the optional redis bridge settings. An empty URL disables it.
type RedisConfig struct {
	URL          string        `yaml:"url"            env:"REDIS_URL"`
	Channel      string        `yaml:"channel"        env:"REDIS_CHANNEL"         env-default:"content-hub:events"`
	PoolSize     int           `yaml:"pool_size"      env:"REDIS_POOL_SIZE"       env-default:"10"`
	MinIdleConns int           `yaml:"min_idle_conns" env:"REDIS_MIN_IDLE_CONNS"  env-default:"2"`
	DialTimeout  time.Duration `yaml:"dial_timeout"   env:"REDIS_DIAL_TIMEOUT"    env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout"   env:"REDIS_READ_TIMEOUT"    env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout"  env:"REDIS_WRITE_TIMEOUT"   env-default:"3s"`
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"JWT_SECRET"        env-required:"true"`
	Issuer           string        `yaml:"issuer"             env:"JWT_ISSUER"        env-default:"content-hub"`
	TokenTTL         time.Duration `yaml:"token_ttl"          env:"JWT_TOKEN_TTL"     env-default:"1h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"BCRYPT_COST"       env-default:"10"`
	LoginRateLimit   int           `yaml:"login_rate_limit"   env:"LOGIN_RATE_LIMIT"  env-default:"10"`
	LoginWindow      time.Duration `yaml:"login_window"       env:"LOGIN_RATE_WINDOW" env-default:"1m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// NotifyConfig holds fanout dispatcher settings.
type NotifyConfig struct {
	MaxConcurrent int           `yaml:"max_concurrent" env:"NOTIFY_MAX_CONCURRENT" env-default:"10"`
	SendTimeout   time.Duration `yaml:"send_timeout"   env:"NOTIFY_SEND_TIMEOUT"   env-default:"5s"`
}

// StatsConfig holds the periodic content statistics job.
type StatsConfig struct {
	Enabled  bool   `yaml:"enabled"  env:"STATS_ENABLED"  env-default:"true"`
	Schedule string `yaml:"schedule" env:"STATS_SCHEDULE" env-default:"@every 1m"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Authorization,Content-Type,X-Request-ID"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"86400"`
}
