// Package topic implements the topic domain engine: versioned CRUD,
// resource attach/detach, the derived parent/child hierarchy, and the
// graph queries that run over it (shortest path, lowest common
// ancestor). Every accepted mutation bumps the topic version by exactly
// one and appends an immutable TopicVersion snapshot.
package topic

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
	"github.com/heartmarshall/knowledgebase/internal/store"
)

// Service orchestrates the entity model and the record store. It owns
// the lifecycle of Topic, TopicVersion and Resource values; the store
// is a dumb persistence surface with no business rules.
//
// Writes are not transactional across collections: persisting a topic
// and appending its snapshot are two independent store calls. A fault
// between them is logged and surfaced, never rolled back.
type Service struct {
	topics   store.Collection[domain.Topic]
	versions store.Collection[domain.TopicVersion]
	log      *slog.Logger
}

// NewService creates a topic service.
func NewService(log *slog.Logger, topics store.Collection[domain.Topic], versions store.Collection[domain.TopicVersion]) *Service {
	return &Service{
		topics:   topics,
		versions: versions,
		log:      log.With("service", "topic"),
	}
}

// byID matches a topic by primary id.
func byID(id uuid.UUID) store.Predicate[domain.Topic] {
	return func(t domain.Topic) bool { return t.ID == id }
}

// byParent matches direct children of the given topic.
func byParent(id uuid.UUID) store.Predicate[domain.Topic] {
	return func(t domain.Topic) bool {
		return t.ParentTopicID != nil && *t.ParentTopicID == id
	}
}

// versionsOf matches all snapshots belonging to a topic.
func versionsOf(topicID uuid.UUID) store.Predicate[domain.TopicVersion] {
	return func(v domain.TopicVersion) bool { return v.TopicID == topicID }
}
