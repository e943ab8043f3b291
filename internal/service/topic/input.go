package topic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
)

// ResourceInput holds the fields of a resource being attached.
type ResourceInput struct {
	URL         string
	Description string
	Type        string
}

// Validate checks all fields and collects all errors.
func (i ResourceInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.URL) == "" {
		errs = append(errs, domain.FieldError{Field: "resource.url", Message: "required"})
	}
	if strings.TrimSpace(i.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "resource.description", Message: "required"})
	}
	if !domain.ResourceType(i.Type).IsValid() {
		errs = append(errs, domain.FieldError{
			Field:   "resource.type",
			Message: fmt.Sprintf("must be one of: %s", joinResourceTypes()),
		})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func joinResourceTypes() string {
	all := domain.ResourceTypes()
	parts := make([]string, len(all))
	for i, rt := range all {
		parts[i] = rt.String()
	}
	return strings.Join(parts, ", ")
}

// CreateInput holds the parameters for creating a topic.
type CreateInput struct {
	Name          string
	Content       string
	ParentTopicID *uuid.UUID
	OwnerID       uuid.UUID
	Resource      *ResourceInput
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(i.Content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if i.OwnerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "ownerId", Message: "required"})
	}
	if i.Resource != nil {
		if err := i.Resource.Validate(); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				errs = append(errs, verr.Errors...)
			}
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the parameters for updating a topic. Name and
// content always overwrite; Resource, when present, is created or
// overwritten in place; ParentTopicID, when present, reparents the
// topic (rejected if it would create a cycle).
type UpdateInput struct {
	TopicID       uuid.UUID
	Name          string
	Content       string
	Resource      *ResourceInput
	ParentTopicID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.TopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(i.Content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if i.Resource != nil {
		if err := i.Resource.Validate(); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				errs = append(errs, verr.Errors...)
			}
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
