package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"content-hub/internal/config"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,               // Maximum number of open connections
		MaxIdleConns:    10,               // Maximum number of idle connections
		ConnMaxLifetime: 1 * time.Hour,    // Maximum lifetime of a connection
		ConnMaxIdleTime: 30 * time.Minute, // Maximum idle time of a connection
	}
}

// connectionConfigFrom overlays positive values from cfg onto the defaults.
func connectionConfigFrom(cfg config.DatabaseConfig) ConnectionConfig {
	cc := DefaultConnectionConfig()
	if cfg.MaxOpenConns > 0 {
		cc.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		cc.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.ConnMaxLifetime > 0 {
		cc.ConnMaxLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		cc.ConnMaxIdleTime = cfg.ConnMaxIdleTime
	}
	return cc
}

// Open creates and configures a new database connection pool and verifies it with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database url not set")
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	cc := connectionConfigFrom(cfg)
	db.SetMaxOpenConns(cc.MaxOpenConns)
	db.SetMaxIdleConns(cc.MaxIdleConns)
	db.SetConnMaxLifetime(cc.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cc.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", cc.MaxOpenConns),
		slog.Int("max_idle_conns", cc.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cc.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cc.ConnMaxIdleTime))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connection established successfully")
	return db, nil
}
