// Package observability provides the logging, Prometheus metrics and
// OpenTelemetry tracing infrastructure shared by the api and admin binaries.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus business metrics for contents and the taxonomy
//   - tracing: OpenTelemetry tracer and HTTP middleware
//
// Example usage:
//
//	import (
//	    "content-hub/internal/observability/logging"
//	    "content-hub/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger(cfg.Log)
//	    logger.Info("application started")
//
//	    metrics.RecordContentOperation("create", "success")
//	}
package observability
