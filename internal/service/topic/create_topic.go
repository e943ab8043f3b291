package topic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/knowledgebase/internal/domain"
)

// Create creates a topic at version 1 and appends its first snapshot.
// When a parent is given it must exist; the topic is rejected otherwise
// so the stored ParentTopicID relation can never point at nothing.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Topic, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.ParentTopicID != nil {
		if _, err := s.topics.FindByID(ctx, *input.ParentTopicID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("parentTopicId", "parent topic does not exist")
			}
			return nil, fmt.Errorf("check parent: %w", err)
		}
	}

	var res *domain.Resource
	if input.Resource != nil {
		res = &domain.Resource{
			URL:         input.Resource.URL,
			Description: input.Resource.Description,
			Type:        domain.ResourceType(input.Resource.Type),
		}
	}

	created, err := domain.NewTopic(input.Name, input.Content, input.ParentTopicID, input.OwnerID, res)
	if err != nil {
		return nil, err
	}

	if err := s.topics.Create(ctx, *created); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	if err := s.versions.Create(ctx, domain.NewTopicVersion(*created)); err != nil {
		// The topic row exists without its version-1 snapshot; surface
		// the fault so the operator can see the inconsistency.
		s.log.ErrorContext(ctx, "snapshot write failed after topic create",
			slog.String("topic_id", created.ID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("create topic version: %w", err)
	}

	s.log.InfoContext(ctx, "topic created",
		slog.String("topic_id", created.ID.String()),
		slog.String("owner_id", created.OwnerID.String()),
		slog.String("name", created.Name),
	)

	return created, nil
}
