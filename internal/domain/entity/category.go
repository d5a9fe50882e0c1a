package entity

import (
	"strings"
	"time"
)

// ContentType is the kind of media a category holds.
type ContentType string

const (
	ContentTypeImage ContentType = "IMAGE"
	ContentTypeVideo ContentType = "VIDEO"
	ContentTypeText  ContentType = "TEXT"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeImage, ContentTypeVideo, ContentTypeText:
		return true
	}
	return false
}

// Category groups content of a single media type.
type Category struct {
	ID         string
	Name       string
	Type       ContentType
	CoverImage string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks name, type and the optional cover image URL.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(c.Name) > maxNameLength {
		return &ValidationError{Field: "name", Message: "name is too long"}
	}
	if !c.Type.Valid() {
		return &ValidationError{Field: "type", Message: "type must be one of IMAGE, VIDEO, TEXT"}
	}
	if c.CoverImage != "" {
		if err := ValidateURL(c.CoverImage); err != nil {
			return err
		}
	}
	return nil
}
