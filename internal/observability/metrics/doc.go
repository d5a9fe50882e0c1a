// Package metrics provides Prometheus business metrics and recording helpers.
//
// HTTP transport metrics live with the HTTP middleware; this package covers
// content mutations, association checks and the periodic content gauges.
package metrics
