package domain

import "github.com/google/uuid"

// Resource is a single external reference attached to a topic.
// Its lifecycle is fully owned by the topic: created on attach,
// overwritten in place on re-attach, removed on detach.
type Resource struct {
	ID          uuid.UUID    `json:"id"`
	TopicID     uuid.UUID    `json:"topicId"`
	URL         string       `json:"url"`
	Description string       `json:"description"`
	Type        ResourceType `json:"type"`
}

// Clone returns an independent copy of the resource.
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}
