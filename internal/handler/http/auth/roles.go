package auth

import (
	"net/http"
	"strings"

	"content-hub/internal/domain/entity"
)

// Rule grants a set of methods on a set of path patterns.
type Rule struct {
	Methods []string
	// Paths support a trailing "/*": "/content/*" matches /content and everything below it.
	Paths []string
}

// Permission is the union of a role's rules.
type Permission []Rule

var readRule = Rule{
	Methods: []string{http.MethodGet, http.MethodOptions},
	Paths:   []string{"/content/*", "/categories/*", "/topics/*"},
}

// RolePermissions maps each role to what it may do.
//
//   - ADMIN: everything
//   - CREATOR: read, plus create and update content
//   - READER: read content, categories and topics
var RolePermissions = map[entity.UserType]Permission{
	entity.UserTypeAdmin: {
		{Methods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}, Paths: []string{"/*"}},
	},
	entity.UserTypeCreator: {
		readRule,
		{Methods: []string{http.MethodPost, http.MethodPatch}, Paths: []string{"/content/*"}},
	},
	entity.UserTypeReader: {
		readRule,
	},
}

// checkRolePermission reports whether role may call method on path.
// Unknown and empty roles are denied.
func checkRolePermission(role entity.UserType, method, path string) bool {
	perm, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, rule := range perm {
		if containsMethod(rule.Methods, method) && matchesPathPattern(path, rule.Paths) {
			return true
		}
	}
	return false
}

func containsMethod(methods []string, method string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}

// matchesPathPattern checks if a path matches any of the allowed patterns.
//
//	patterns := []string{"/content/*", "/topics"}
//	matchesPathPattern("/content", patterns)      // true
//	matchesPathPattern("/content/1", patterns)    // true
//	matchesPathPattern("/contents", patterns)     // false
//	matchesPathPattern("/topics/1", patterns)     // false
func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}
		if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == pattern {
			return true
		}
	}
	return false
}
