package topic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
)

// Update overwrites a topic's name and content, optionally creates or
// overwrites its resource, and optionally reparents it. However many
// fields change, the version is bumped exactly once and one snapshot is
// appended.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Topic, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.topics.FindByID(ctx, input.TopicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	if input.ParentTopicID != nil {
		if err := s.checkReparent(ctx, input.TopicID, *input.ParentTopicID); err != nil {
			return nil, err
		}
	}

	next := current.NextVersion()
	next.Name = input.Name
	next.Content = input.Content
	if input.ParentTopicID != nil {
		next.ParentTopicID = input.ParentTopicID
	}
	if input.Resource != nil {
		res := &domain.Resource{
			ID:          uuid.New(),
			TopicID:     next.ID,
			URL:         input.Resource.URL,
			Description: input.Resource.Description,
			Type:        domain.ResourceType(input.Resource.Type),
		}
		if next.Resource != nil {
			// Re-attach overwrites fields in place; the resource keeps
			// its identity across versions.
			res.ID = next.Resource.ID
		}
		next.SetResource(res)
	}

	if err := s.topics.Update(ctx, byID(next.ID), next); err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}
	if err := s.versions.Create(ctx, domain.NewTopicVersion(next)); err != nil {
		s.log.ErrorContext(ctx, "snapshot write failed after topic update",
			slog.String("topic_id", next.ID.String()),
			slog.Int("version", next.Version),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("create topic version: %w", err)
	}

	s.log.InfoContext(ctx, "topic updated",
		slog.String("topic_id", next.ID.String()),
		slog.Int("version", next.Version),
	)

	return &next, nil
}

// checkReparent rejects a new parent that is missing, the topic itself,
// or one of the topic's own descendants, since any of those would
// corrupt the tree with a cycle. The upward walk carries a visited set so an
// already-corrupt chain cannot loop forever.
func (s *Service) checkReparent(ctx context.Context, topicID, newParentID uuid.UUID) error {
	if newParentID == topicID {
		return domain.NewValidationError("parentTopicId", "topic cannot be its own parent")
	}

	visited := map[uuid.UUID]struct{}{}
	cursor := newParentID
	for {
		if _, seen := visited[cursor]; seen {
			break
		}
		visited[cursor] = struct{}{}

		node, err := s.topics.FindByID(ctx, cursor)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				if cursor == newParentID {
					return domain.NewValidationError("parentTopicId", "parent topic does not exist")
				}
				break // dangling link mid-chain; not a cycle
			}
			return fmt.Errorf("walk ancestors: %w", err)
		}
		if node.ID == topicID {
			return domain.NewValidationError("parentTopicId", "new parent is a descendant of the topic")
		}
		if node.ParentTopicID == nil {
			break
		}
		cursor = *node.ParentTopicID
	}
	return nil
}
