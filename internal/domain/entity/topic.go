package entity

import (
	"strings"
	"time"
)

const maxNameLength = 100

// Topic is a subject area. Categories are linked to topics through associations.
type Topic struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the topic name.
func (t *Topic) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(t.Name) > maxNameLength {
		return &ValidationError{Field: "name", Message: "name is too long"}
	}
	return nil
}
