// Package entity defines the core domain entities and validation logic for the application.
// It contains the content taxonomy (Category, Topic), the Content items attached to a
// (Category, Topic) pair, Users, and the change events broadcast to live subscribers.
package entity

import (
	"strings"
	"time"
)

// maxTitleLength bounds the content title.
const maxTitleLength = 255

// Content is a single piece of published material attached to a category/topic pair.
// CreatorID is a weak reference to the User that created it.
type Content struct {
	ID         string
	Title      string
	Type       string
	Credits    string
	CreatorID  string
	CategoryID string
	TopicID    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the client supplied fields of a content record.
func (c *Content) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(c.Title) > maxTitleLength {
		return &ValidationError{Field: "title", Message: "title is too long"}
	}
	if strings.TrimSpace(c.Type) == "" {
		return &ValidationError{Field: "type", Message: "type is required"}
	}
	if c.CategoryID == "" {
		return &ValidationError{Field: "categoryId", Message: "categoryId is required"}
	}
	if c.TopicID == "" {
		return &ValidationError{Field: "topicId", Message: "topicId is required"}
	}
	return nil
}

// CategoryCount is one group of the count-by-category aggregation.
type CategoryCount struct {
	CategoryID string
	Count      int64
}
