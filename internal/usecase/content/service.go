package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"content-hub/internal/domain/entity"
	"content-hub/internal/observability/logging"
	"content-hub/internal/observability/metrics"
	"content-hub/internal/observability/tracing"
	"content-hub/internal/repository"
)

// CreateInput represents the client supplied fields of a new content record.
type CreateInput struct {
	Title      string
	Type       string
	Credits    string
	CategoryID string
	TopicID    string
}

// UpdateInput represents a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Title      *string
	Type       *string
	Credits    *string
	CategoryID *string
	TopicID    *string
}

// Service provides content management use cases.
// Writes are gated by the association index and announced through Publisher.
type Service struct {
	Repo         repository.ContentRepository
	Associations repository.AssociationRepository
	Publisher    Publisher
	Logger       *slog.Logger

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) logger(ctx context.Context) *slog.Logger {
	if s.Logger != nil {
		return logging.WithRequestID(ctx, s.Logger)
	}
	return logging.FromContext(ctx)
}

// CheckAssociation reports whether categoryID is associated with topicID.
// Storage errors are returned as is.
func (s *Service) CheckAssociation(ctx context.Context, categoryID, topicID string) (AssociationResult, error) {
	ok, err := s.Associations.IsAssociated(ctx, categoryID, topicID)
	if err != nil {
		return NotAssociated, fmt.Errorf("check association: %w", err)
	}
	if !ok {
		return NotAssociated, nil
	}
	return Associated, nil
}

// Create validates in, checks the category/topic association and stores a new record.
// The id, timestamps and creator are assigned here. On success a contentCreated event
// carrying the full record is published.
func (s *Service) Create(ctx context.Context, creatorID string, in CreateInput) (_ *entity.Content, err error) {
	ctx, span := tracing.StartSpan(ctx, "content.Create",
		attribute.String("content.category_id", in.CategoryID),
		attribute.String("content.topic_id", in.TopicID))
	defer func() { tracing.EndSpan(span, err) }()

	now := s.now().UTC()
	c := &entity.Content{
		ID:         s.newID(),
		Title:      strings.TrimSpace(in.Title),
		Type:       strings.TrimSpace(in.Type),
		Credits:    in.Credits,
		CreatorID:  creatorID,
		CategoryID: in.CategoryID,
		TopicID:    in.TopicID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result, err := s.CheckAssociation(ctx, c.CategoryID, c.TopicID)
	if err != nil {
		metrics.RecordContentOperation("create", metrics.OutcomeFailure)
		return nil, err
	}
	if result == NotAssociated {
		metrics.RecordAssociationRejected("create")
		return nil, ErrCategoryNotAssociatedWithTopic
	}

	if err := s.Repo.Create(ctx, c); err != nil {
		metrics.RecordContentOperation("create", metrics.OutcomeFailure)
		return nil, fmt.Errorf("create content: %w", err)
	}
	metrics.RecordContentOperation("create", metrics.OutcomeSuccess)

	s.publish(ctx, entity.NewContentEvent(entity.EventContentCreated, c))
	return c, nil
}

// Get retrieves a single record. Returns entity.ErrNotFound (wrapped) when absent.
func (s *Service) Get(ctx context.Context, id string) (*entity.Content, error) {
	if id == "" {
		return nil, ErrInvalidContentID
	}
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}
	return c, nil
}

// List returns every record in ascending creation order.
func (s *Service) List(ctx context.Context) ([]*entity.Content, error) {
	contents, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	return contents, nil
}

// Search returns the records matching filters.
func (s *Service) Search(ctx context.Context, filters repository.ContentSearchFilters) ([]*entity.Content, error) {
	contents, err := s.Repo.Search(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("search contents: %w", err)
	}
	return contents, nil
}

// CountByCategory counts records per category, optionally restricted to a topic.
func (s *Service) CountByCategory(ctx context.Context, topicID *string) ([]entity.CategoryCount, error) {
	counts, err := s.Repo.CountByCategory(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("count contents by category: %w", err)
	}
	return counts, nil
}

// Update merges in onto the stored record. The association check runs on the
// resulting (category, topic) pair only when either id changes.
// Concurrent updates are last write wins.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (_ *entity.Content, err error) {
	if id == "" {
		return nil, ErrInvalidContentID
	}
	ctx, span := tracing.StartSpan(ctx, "content.Update", attribute.String("content.id", id))
	defer func() { tracing.EndSpan(span, err) }()

	current, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}

	merged := *current
	patch := repository.ContentPatch{Credits: in.Credits}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		merged.Title, patch.Title = t, &t
	}
	if in.Type != nil {
		t := strings.TrimSpace(*in.Type)
		merged.Type, patch.Type = t, &t
	}
	if in.CategoryID != nil {
		merged.CategoryID, patch.CategoryID = *in.CategoryID, in.CategoryID
	}
	if in.TopicID != nil {
		merged.TopicID, patch.TopicID = *in.TopicID, in.TopicID
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if merged.CategoryID != current.CategoryID || merged.TopicID != current.TopicID {
		result, err := s.CheckAssociation(ctx, merged.CategoryID, merged.TopicID)
		if err != nil {
			metrics.RecordContentOperation("update", metrics.OutcomeFailure)
			return nil, err
		}
		if result == NotAssociated {
			metrics.RecordAssociationRejected("update")
			return nil, ErrCategoryNotAssociatedWithTopic
		}
	}

	updated, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		metrics.RecordContentOperation("update", metrics.OutcomeFailure)
		return nil, fmt.Errorf("update content: %w", err)
	}
	metrics.RecordContentOperation("update", metrics.OutcomeSuccess)

	s.publish(ctx, entity.NewContentEvent(entity.EventContentUpdated, updated))
	return updated, nil
}

// Delete removes a record and publishes a contentDeleted event carrying only its id.
func (s *Service) Delete(ctx context.Context, id string) (err error) {
	if id == "" {
		return ErrInvalidContentID
	}
	ctx, span := tracing.StartSpan(ctx, "content.Delete", attribute.String("content.id", id))
	defer func() { tracing.EndSpan(span, err) }()

	if err := s.Repo.Delete(ctx, id); err != nil {
		metrics.RecordContentOperation("delete", metrics.OutcomeFailure)
		return fmt.Errorf("delete content: %w", err)
	}
	metrics.RecordContentOperation("delete", metrics.OutcomeSuccess)

	s.publish(ctx, entity.NewContentDeletedEvent(id))
	return nil
}

// publish hands event to the Publisher detached from the request lifetime.
// Failures are logged and never surface to the caller.
func (s *Service) publish(ctx context.Context, event entity.ContentEvent) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger(ctx).WarnContext(ctx, "content event publish failed",
			slog.String("event", string(event.Type)),
			slog.String("content_id", event.ContentID),
			slog.Any("error", err))
	}
}
