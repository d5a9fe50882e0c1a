// Package content provides HTTP handlers for content endpoints: creation and
// update gated by the category/topic association, lookup, search, the
// per-category count and deletion.
package content

import (
	"time"

	"content-hub/internal/domain/entity"
)

// DTO represents the JSON structure for content data transfer.
// The realtime channel uses the same shape.
type DTO struct {
	ID         string    `json:"id" example:"5f0c6a1e-3b7a-4d59-9c55-2f6e4b1b8a10"`
	Title      string    `json:"title" example:"Solar eclipse timelapse"`
	Type       string    `json:"type" example:"video/mp4"`
	Credits    string    `json:"credits" example:"NASA"`
	CreatorID  string    `json:"creatorId" example:"c3a1..."`
	CategoryID string    `json:"categoryId" example:"9b2e..."`
	TopicID    string    `json:"topicId" example:"1d7f..."`
	CreatedAt  time.Time `json:"createdAt" example:"2025-10-26T12:00:00Z"`
	UpdatedAt  time.Time `json:"updatedAt" example:"2025-10-26T12:00:00Z"`
}

// CountDTO is one row of the count-by-category response.
type CountDTO struct {
	CategoryID string `json:"categoryId"`
	Count      int64  `json:"count"`
}

func ToDTO(c *entity.Content) DTO {
	return DTO{
		ID:         c.ID,
		Title:      c.Title,
		Type:       c.Type,
		Credits:    c.Credits,
		CreatorID:  c.CreatorID,
		CategoryID: c.CategoryID,
		TopicID:    c.TopicID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func ToDTOs(list []*entity.Content) []DTO {
	out := make([]DTO, 0, len(list))
	for _, c := range list {
		out = append(out, ToDTO(c))
	}
	return out
}

func ToCountDTOs(counts []entity.CategoryCount) []CountDTO {
	out := make([]CountDTO, 0, len(counts))
	for _, c := range counts {
		out = append(out, CountDTO{CategoryID: c.CategoryID, Count: c.Count})
	}
	return out
}

type createRequest struct {
	Title      string `json:"title"`
	Type       string `json:"type"`
	Credits    string `json:"credits"`
	CategoryID string `json:"categoryId"`
	TopicID    string `json:"topicId"`
}

type updateRequest struct {
	Title      *string `json:"title"`
	Type       *string `json:"type"`
	Credits    *string `json:"credits"`
	CategoryID *string `json:"categoryId"`
	TopicID    *string `json:"topicId"`
}
