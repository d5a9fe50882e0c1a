// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C trace context, opens a server span per
// request and echoes the trace id in the X-Trace-Id response header. Services
// open child spans with StartSpan and close them with EndSpan.
//
// No exporter is configured here; the process-wide TracerProvider decides
// where spans go.
package tracing
