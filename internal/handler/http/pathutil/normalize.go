// Package pathutil provides utilities for URL path manipulation and normalization.
package pathutil

import (
	"regexp"
	"strings"
)

// idSegment matches opaque identifiers used in resource paths (UUIDs, numeric ids).
var idSegment = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z_-]*$`)

// collections lists the resource roots whose second segment is an identifier,
// together with the literal sub-routes that must not be collapsed to ":id".
var collections = map[string]map[string]bool{
	"content":    {"count-by-category": true},
	"categories": {},
	"topics":     {"search": true},
	"users":      {"register": true},
}

// NormalizePath normalizes URL paths for metrics and tracing to prevent
// high cardinality. Identifier segments are replaced with ":id".
//
// Examples:
//   - /content/3f0c1b9e-8a4d-4c55-9d0e-1f2a3b4c5d6e -> /content/:id
//   - /topics/42/categories -> /topics/:id/categories
//   - /topics/search -> /topics/search
func NormalizePath(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "/"
	}

	segments := strings.Split(trimmed, "/")
	literals, ok := collections[segments[0]]
	if !ok || len(segments) < 2 {
		return path
	}

	if !literals[segments[1]] && idSegment.MatchString(segments[1]) {
		segments[1] = ":id"
	}
	return "/" + strings.Join(segments, "/")
}
