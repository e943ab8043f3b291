package topic

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
)

// pathNode is one BFS frontier entry: a topic plus the path that
// discovered it.
type pathNode struct {
	topic    domain.Topic
	distance int
	path     []domain.Topic
}

// ShortestPath runs a breadth-first search over the undirected view of
// the parent/child tree: each topic's neighbors are its parent (if any)
// and its direct children, queried on demand. The parent direction is
// explored before children at every node, which fixes how ties between
// equally short paths break. Missing endpoints and disconnected
// subtrees both yield domain.ErrNotFound.
func (s *Service) ShortestPath(ctx context.Context, fromID, toID uuid.UUID) (*domain.TopicPath, error) {
	if fromID == uuid.Nil || toID == uuid.Nil {
		return nil, domain.NewValidationError("id", "both topic ids are required")
	}

	from, err := s.topics.FindByID(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("get source topic: %w", err)
	}
	if _, err := s.topics.FindByID(ctx, toID); err != nil {
		return nil, fmt.Errorf("get target topic: %w", err)
	}

	if fromID == toID {
		return &domain.TopicPath{Path: []domain.Topic{*from}, Distance: 0}, nil
	}

	visited := map[uuid.UUID]struct{}{fromID: {}}
	queue := []pathNode{{topic: *from, distance: 0, path: []domain.Topic{*from}}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		neighbors, err := s.neighbors(ctx, current.topic)
		if err != nil {
			return nil, err
		}
		for _, n := range neighbors {
			if _, seen := visited[n.ID]; seen {
				continue
			}
			extended := make([]domain.Topic, len(current.path), len(current.path)+1)
			copy(extended, current.path)
			extended = append(extended, n)

			if n.ID == toID {
				return &domain.TopicPath{Path: extended, Distance: current.distance + 1}, nil
			}
			visited[n.ID] = struct{}{}
			queue = append(queue, pathNode{topic: n, distance: current.distance + 1, path: extended})
		}
	}

	return nil, fmt.Errorf("no path between %s and %s: %w", fromID, toID, domain.ErrNotFound)
}

// neighbors returns the undirected adjacency of a topic: parent first,
// then direct children. A dangling parent link is skipped rather than
// treated as a fault.
func (s *Service) neighbors(ctx context.Context, t domain.Topic) ([]domain.Topic, error) {
	var result []domain.Topic

	if t.ParentTopicID != nil {
		parent, err := s.topics.FindByID(ctx, *t.ParentTopicID)
		switch {
		case err == nil:
			result = append(result, *parent)
		case errors.Is(err, domain.ErrNotFound):
			// dangling link, ignore
		default:
			return nil, fmt.Errorf("get parent: %w", err)
		}
	}

	children, err := s.topics.FindManyBy(ctx, byParent(t.ID))
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return append(result, children...), nil
}
