package topic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
)

// Delete removes a topic together with its version history. A topic
// that still has children blocks the delete unless cascade is set, in
// which case every transitive descendant (and its history) goes first.
//
// Ordinary failures (missing topic, children present) come back in
// the DeleteResult; only store faults are returned as errors.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, cascade bool) (domain.DeleteResult, error) {
	if id == uuid.Nil {
		return domain.DeleteResult{Success: false, Error: "topic id is required"}, nil
	}

	if _, err := s.topics.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DeleteResult{Success: false, Error: "topic not found"}, nil
		}
		return domain.DeleteResult{}, fmt.Errorf("get topic: %w", err)
	}

	children, err := s.topics.FindManyBy(ctx, byParent(id))
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("list children: %w", err)
	}
	if len(children) > 0 && !cascade {
		return domain.DeleteResult{
			Success: false,
			Error:   fmt.Sprintf("topic has %d child topic(s); pass cascade to delete the subtree", len(children)),
		}, nil
	}

	if cascade {
		for _, child := range children {
			if err := s.deleteSubtree(ctx, child.ID); err != nil {
				return domain.DeleteResult{}, err
			}
		}
	}

	if err := s.deleteOne(ctx, id); err != nil {
		return domain.DeleteResult{}, err
	}

	s.log.InfoContext(ctx, "topic deleted",
		slog.String("topic_id", id.String()),
		slog.Bool("cascade", cascade),
		slog.Int("direct_children", len(children)),
	)

	return domain.DeleteResult{Success: true}, nil
}

// deleteSubtree removes a topic and all of its descendants, children
// before parents. Each level re-queries the store, so depth is bounded
// only by the tree itself.
func (s *Service) deleteSubtree(ctx context.Context, id uuid.UUID) error {
	children, err := s.topics.FindManyBy(ctx, byParent(id))
	if err != nil {
		return fmt.Errorf("list children: %w", err)
	}
	for _, child := range children {
		if err := s.deleteSubtree(ctx, child.ID); err != nil {
			return err
		}
	}
	return s.deleteOne(ctx, id)
}

// deleteOne removes a single topic's version history, then the topic.
func (s *Service) deleteOne(ctx context.Context, id uuid.UUID) error {
	if err := s.versions.Delete(ctx, versionsOf(id)); err != nil {
		return fmt.Errorf("delete topic versions: %w", err)
	}
	if err := s.topics.Delete(ctx, byID(id)); err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	return nil
}
