package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Topic is the versioned, hierarchical knowledge unit and the aggregate
// root of this domain. Version starts at 1 and increases by exactly 1 on
// every accepted mutation; the service appends a TopicVersion snapshot
// after each bump.
type Topic struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Content       string     `json:"content"`
	ParentTopicID *uuid.UUID `json:"parentTopicId"`
	Version       int        `json:"version"`
	OwnerID       uuid.UUID  `json:"ownerId"`
	Resource      *Resource  `json:"resource"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NewTopic creates a topic at version 1 with a fresh ID.
// Name, content and owner are required. When a resource is supplied its
// ID is allocated here and its TopicID is backfilled from the new topic.
func NewTopic(name, content string, parentID *uuid.UUID, ownerID uuid.UUID, res *Resource) (*Topic, error) {
	var errs []FieldError
	if strings.TrimSpace(name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(content) == "" {
		errs = append(errs, FieldError{Field: "content", Message: "required"})
	}
	if ownerID == uuid.Nil {
		errs = append(errs, FieldError{Field: "ownerId", Message: "required"})
	}
	if res != nil && !res.Type.IsValid() {
		errs = append(errs, FieldError{Field: "resource.type", Message: "invalid resource type"})
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	now := time.Now().UTC()
	t := &Topic{
		ID:            uuid.New(),
		Name:          name,
		Content:       content,
		ParentTopicID: parentID,
		Version:       1,
		OwnerID:       ownerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if res != nil {
		attached := res.Clone()
		attached.ID = uuid.New()
		attached.TopicID = t.ID
		t.Resource = attached
	}
	return t, nil
}

// NextVersion returns a copy of the topic with the version incremented
// by 1 and a refreshed UpdatedAt. The receiver is not modified and no
// storage is touched; the service persists the returned value.
func (t Topic) NextVersion() Topic {
	t.Version++
	t.UpdatedAt = time.Now().UTC()
	t.Resource = t.Resource.Clone()
	return t
}

// SetResource attaches or replaces the topic's resource in place and
// refreshes UpdatedAt. It does not bump the version; the service does
// that before persisting.
func (t *Topic) SetResource(res *Resource) {
	t.Resource = res
	t.UpdatedAt = time.Now().UTC()
}

// RemoveResource detaches the topic's resource and refreshes UpdatedAt.
func (t *Topic) RemoveResource() {
	t.Resource = nil
	t.UpdatedAt = time.Now().UTC()
}

// RecordID implements the record-store key contract.
func (t Topic) RecordID() uuid.UUID { return t.ID }

// TopicVersion is an immutable snapshot of a topic at a specific version
// number. Rows are append-only: for a given TopicID the version numbers
// form a contiguous range starting at 1.
type TopicVersion struct {
	ID            uuid.UUID  `json:"id"`
	TopicID       uuid.UUID  `json:"topicId"`
	Name          string     `json:"name"`
	Content       string     `json:"content"`
	ParentTopicID *uuid.UUID `json:"parentTopicId"`
	Version       int        `json:"version"`
	OwnerID       uuid.UUID  `json:"ownerId"`
	Resource      *Resource  `json:"resource"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NewTopicVersion captures the topic's current state as a snapshot with
// its own ID. The resource is deep-copied so later in-place mutations of
// the live topic cannot alias into the audit trail.
func NewTopicVersion(t Topic) TopicVersion {
	return TopicVersion{
		ID:            uuid.New(),
		TopicID:       t.ID,
		Name:          t.Name,
		Content:       t.Content,
		ParentTopicID: t.ParentTopicID,
		Version:       t.Version,
		OwnerID:       t.OwnerID,
		Resource:      t.Resource.Clone(),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// RecordID implements the record-store key contract.
func (v TopicVersion) RecordID() uuid.UUID { return v.ID }

// CompositeTopic is one node of the derived hierarchy view: a topic plus
// its direct children, built on demand from stored ParentTopicID links.
type CompositeTopic struct {
	Topic    Topic             `json:"topic"`
	Children []*CompositeTopic `json:"children"`
}

// TopicPath is the result of a shortest-path query.
type TopicPath struct {
	Path     []Topic `json:"path"`
	Distance int     `json:"distance"`
}

// DeleteResult reports the outcome of a delete request. Ordinary
// failures ("not found", "has children") are carried in Error rather
// than raised, so the boundary can map each to a distinct response.
type DeleteResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
