package auth

import "strings"

// PublicEndpoints defines endpoints that don't require authentication.
//
// - /health, /ready, /live: orchestration probes
// - /metrics: Prometheus scraping
// - /swagger/: API documentation
// - /auth/login, /users/register: obtaining an account and a token
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/swagger/",
	"/auth/login",
	"/users/register",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
// Endpoints ending with '/' use prefix matching. Others match exactly, with an
// optional trailing slash or query string, so /health does not match /healthcheck.
//
//	IsPublicEndpoint("/health")             // true
//	IsPublicEndpoint("/health/detail")      // false
//	IsPublicEndpoint("/swagger/index.html") // true
//	IsPublicEndpoint("/users")              // false
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		if path == endpoint || path == endpoint+"/" || strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
