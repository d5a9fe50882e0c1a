package content

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"content-hub/internal/repository"
)

// SearchQuery holds the raw search parameters shared by the HTTP query string
// and the realtime getContents message.
type SearchQuery struct {
	TopicID   string `json:"topicId"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	OrderBy   string `json:"orderBy"`
}

// Empty reports whether no parameter is set.
func (q SearchQuery) Empty() bool {
	return q.TopicID == "" && q.Name == "" && q.StartDate == "" && q.EndDate == "" && q.OrderBy == ""
}

// Filters converts q into repository filters.
// Dates accept RFC3339 or YYYY-MM-DD (UTC midnight).
func (q SearchQuery) Filters() (repository.ContentSearchFilters, error) {
	var f repository.ContentSearchFilters

	if v := strings.TrimSpace(q.TopicID); v != "" {
		f.TopicID = &v
	}
	if v := strings.TrimSpace(q.Name); v != "" {
		f.Title = &v
	}

	var err error
	if f.From, err = parseDate("startDate", q.StartDate); err != nil {
		return f, err
	}
	if f.To, err = parseDate("endDate", q.EndDate); err != nil {
		return f, err
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, errors.New("startDate must not be after endDate")
	}

	switch strings.ToLower(strings.TrimSpace(q.OrderBy)) {
	case "", "asc":
		f.Order = repository.SortAsc
	case "desc":
		f.Order = repository.SortDesc
	default:
		return f, errors.New("orderBy must be asc or desc")
	}
	return f, nil
}

func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s is invalid: use RFC3339 or YYYY-MM-DD", field)
}
