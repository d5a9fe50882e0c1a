package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"content-hub/internal/domain/entity"
)

// PostgreSQL error codes used for mapping.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidTextRepr     = "22P02"
)

// unavailable reports connection-class failures.
func unavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08: connection exception, 57P: operator intervention
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P")
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// mapWriteError translates a failed INSERT/UPDATE/DELETE into a domain error.
// constraint violations become failed, everything else but connectivity is wrapped as is.
func mapWriteError(op string, err error, failed error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if unavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, entity.ErrStorageUnavailable, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, entity.ErrAlreadyExists, pgErr.ConstraintName)
		case pgForeignKeyViolation, pgCheckViolation, pgInvalidTextRepr:
			return fmt.Errorf("%s: %w: %s", op, failed, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w: %v", op, failed, err)
}

// mapReadError wraps a failed query.
func mapReadError(op string, err error) error {
	if unavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, entity.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// escapeLike escapes ILIKE wildcards so the term matches literally.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// containsPattern builds a substring pattern for ILIKE.
func containsPattern(term string) string {
	return "%" + escapeLike(term) + "%"
}
