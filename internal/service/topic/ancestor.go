package topic

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
)

// LowestCommonAncestor returns the deepest topic that is an ancestor of
// both inputs, where every topic counts as an ancestor of itself: the
// LCA of a parent and its child is the parent, and the LCA of a topic
// with itself is that topic. Topics in disjoint trees yield
// domain.ErrNotFound.
func (s *Service) LowestCommonAncestor(ctx context.Context, id1, id2 uuid.UUID) (*domain.Topic, error) {
	if id1 == uuid.Nil || id2 == uuid.Nil {
		return nil, domain.NewValidationError("id", "both topic ids are required")
	}

	first, err := s.topics.FindByID(ctx, id1)
	if err != nil {
		return nil, fmt.Errorf("get first topic: %w", err)
	}
	second, err := s.topics.FindByID(ctx, id2)
	if err != nil {
		return nil, fmt.Errorf("get second topic: %w", err)
	}

	// Collect the first topic's ancestor chain, itself included.
	ancestors := map[uuid.UUID]struct{}{}
	if err := s.walkAncestors(ctx, *first, func(t domain.Topic) bool {
		ancestors[t.ID] = struct{}{}
		return true
	}); err != nil {
		return nil, err
	}

	// Walk the second chain upward; the first hit is the LCA.
	var lca *domain.Topic
	if err := s.walkAncestors(ctx, *second, func(t domain.Topic) bool {
		if _, ok := ancestors[t.ID]; ok {
			lca = &t
			return false
		}
		return true
	}); err != nil {
		return nil, err
	}

	if lca == nil {
		return nil, fmt.Errorf("no common ancestor of %s and %s: %w", id1, id2, domain.ErrNotFound)
	}
	return lca, nil
}

// walkAncestors visits a topic and each of its ancestors in order,
// stopping when visit returns false, the chain reaches a root, a link
// dangles, or a cycle is detected via the visited set.
func (s *Service) walkAncestors(ctx context.Context, start domain.Topic, visit func(domain.Topic) bool) error {
	visited := map[uuid.UUID]struct{}{}
	current := start
	for {
		if _, seen := visited[current.ID]; seen {
			return nil
		}
		visited[current.ID] = struct{}{}

		if !visit(current) {
			return nil
		}
		if current.ParentTopicID == nil {
			return nil
		}

		parent, err := s.topics.FindByID(ctx, *current.ParentTopicID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil // dangling link terminates the walk
			}
			return fmt.Errorf("walk ancestors: %w", err)
		}
		current = *parent
	}
}
