package topic

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
)

// Hierarchy builds the composite tree rooted at the given topic by
// recursively querying direct children. The tree is derived, never
// stored, and rebuilt on every call. A visited set guards the walk so
// a corrupted (cyclic) parent relation terminates instead of looping.
func (s *Service) Hierarchy(ctx context.Context, rootID uuid.UUID) (*domain.CompositeTopic, error) {
	if rootID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	root, err := s.topics.FindByID(ctx, rootID)
	if err != nil {
		return nil, fmt.Errorf("get root topic: %w", err)
	}

	visited := map[uuid.UUID]struct{}{}
	return s.buildSubtree(ctx, *root, visited)
}

func (s *Service) buildSubtree(ctx context.Context, t domain.Topic, visited map[uuid.UUID]struct{}) (*domain.CompositeTopic, error) {
	visited[t.ID] = struct{}{}

	node := &domain.CompositeTopic{Topic: t, Children: []*domain.CompositeTopic{}}

	children, err := s.topics.FindManyBy(ctx, byParent(t.ID))
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	sort.Slice(children, func(i, j int) bool {
		if children[i].CreatedAt.Equal(children[j].CreatedAt) {
			return children[i].Name < children[j].Name
		}
		return children[i].CreatedAt.Before(children[j].CreatedAt)
	})

	for _, child := range children {
		if _, seen := visited[child.ID]; seen {
			continue
		}
		sub, err := s.buildSubtree(ctx, child, visited)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, sub)
	}
	return node, nil
}
