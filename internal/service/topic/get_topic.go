package topic

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
)

// GetByID returns the current state of a topic. A missing topic yields
// domain.ErrNotFound, which boundaries treat as an ordinary outcome.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	t, err := s.topics.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return t, nil
}

// List returns every topic at its latest version.
func (s *Service) List(ctx context.Context) ([]domain.Topic, error) {
	all, err := s.topics.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return all, nil
}

// GetVersion returns the snapshot of a topic at a specific version
// number, or domain.ErrNotFound when no such pair exists.
func (s *Service) GetVersion(ctx context.Context, topicID uuid.UUID, version int) (*domain.TopicVersion, error) {
	if topicID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	if version < 1 {
		return nil, domain.NewValidationError("version", "must be a positive integer")
	}

	v, err := s.versions.FindBy(ctx, func(tv domain.TopicVersion) bool {
		return tv.TopicID == topicID && tv.Version == version
	})
	if err != nil {
		return nil, fmt.Errorf("get topic version: %w", err)
	}
	return v, nil
}

// ListVersions returns every snapshot of a topic ordered by version
// ascending. A topic with no snapshots yields an empty slice.
func (s *Service) ListVersions(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error) {
	if topicID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	vs, err := s.versions.FindManyBy(ctx, versionsOf(topicID))
	if err != nil {
		return nil, fmt.Errorf("list topic versions: %w", err)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i].Version < vs[j].Version })
	return vs, nil
}
