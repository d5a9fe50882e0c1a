package pathutil

import (
	"errors"
	"net/http"
	"strings"
)

// ErrInvalidID is returned when a path identifier is missing or malformed.
var ErrInvalidID = errors.New("invalid id")

const maxIDLength = 64

// PathID returns the named wildcard from a ServeMux route pattern.
// It rejects empty values, values longer than 64 bytes, and values containing
// characters outside [0-9A-Za-z_-].
func PathID(r *http.Request, name string) (string, error) {
	id := strings.TrimSpace(r.PathValue(name))
	if id == "" || len(id) > maxIDLength || !idSegment.MatchString(id) {
		return "", ErrInvalidID
	}
	return id, nil
}
