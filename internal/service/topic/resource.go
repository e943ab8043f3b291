package topic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
)

// SetResource attaches a resource to a topic, or overwrites the fields
// of the existing one in place (same resource id). The mutation bumps
// the version by 1 and appends a snapshot.
func (s *Service) SetResource(ctx context.Context, topicID uuid.UUID, input ResourceInput) (*domain.Topic, error) {
	if topicID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.topics.FindByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	res := &domain.Resource{
		ID:          uuid.New(),
		TopicID:     topicID,
		URL:         input.URL,
		Description: input.Description,
		Type:        domain.ResourceType(input.Type),
	}
	if current.Resource != nil {
		res.ID = current.Resource.ID
	}

	next := current.NextVersion()
	next.SetResource(res)

	if err := s.topics.Update(ctx, byID(topicID), next); err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}
	if err := s.versions.Create(ctx, domain.NewTopicVersion(next)); err != nil {
		s.log.ErrorContext(ctx, "snapshot write failed after resource set",
			slog.String("topic_id", topicID.String()),
			slog.Int("version", next.Version),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("create topic version: %w", err)
	}

	s.log.InfoContext(ctx, "topic resource set",
		slog.String("topic_id", topicID.String()),
		slog.String("resource_type", input.Type),
		slog.Int("version", next.Version),
	)

	return &next, nil
}

// RemoveResource detaches a topic's resource, bumping the version and
// appending a snapshot. A topic that has no resource yields
// domain.ErrNoResource, distinguishable from a missing topic.
func (s *Service) RemoveResource(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	if topicID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	current, err := s.topics.FindByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	if current.Resource == nil {
		return nil, domain.ErrNoResource
	}

	next := current.NextVersion()
	next.RemoveResource()

	if err := s.topics.Update(ctx, byID(topicID), next); err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}
	if err := s.versions.Create(ctx, domain.NewTopicVersion(next)); err != nil {
		s.log.ErrorContext(ctx, "snapshot write failed after resource removal",
			slog.String("topic_id", topicID.String()),
			slog.Int("version", next.Version),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("create topic version: %w", err)
	}

	s.log.InfoContext(ctx, "topic resource removed",
		slog.String("topic_id", topicID.String()),
		slog.Int("version", next.Version),
	)

	return &next, nil
}
