// Package permission implements the role/ownership authorization engine
// gating every topic mutation. Resolution order is load-bearing: the
// per-resource ownership override is checked before the role-wide rule,
// so a viewer may update a topic they own while staying read-only
// everywhere else.
package permission

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
)

type userStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Service answers permission checks. It is stateless apart from the
// user lookup; all decisions are pure functions of (role, resource,
// action) plus the ownership override.
type Service struct {
	users userStore
	log   *slog.Logger
}

// NewService creates a permission service.
func NewService(log *slog.Logger, users userStore) *Service {
	return &Service{
		users: users,
		log:   log.With("service", "permission"),
	}
}

// HasPermission reports whether userID may perform action on the given
// resource kind. ownerID, when non-nil, is the owner of the specific
// resource instance; a caller who owns the instance is granted
// unconditionally. Everything else fails closed: missing user, unknown
// role, or no rule for the role all deny.
func (s *Service) HasPermission(ctx context.Context, userID uuid.UUID, res domain.PermResource, action domain.Action, ownerID *uuid.UUID) bool {
	if ownerID != nil && *ownerID == userID {
		return true
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.DebugContext(ctx, "permission denied: unknown user",
			slog.String("user_id", userID.String()),
			slog.String("resource", res.String()),
			slog.String("action", action.String()),
		)
		return false
	}

	r, ok := roleRules[user.Role]
	if !ok {
		return false
	}
	return r(res, action)
}

// CanCreate reports whether the user may create resources of the kind.
func (s *Service) CanCreate(ctx context.Context, userID uuid.UUID, res domain.PermResource) bool {
	return s.HasPermission(ctx, userID, res, domain.ActionCreate, nil)
}

// CanRead reports whether the user may read the resource.
func (s *Service) CanRead(ctx context.Context, userID uuid.UUID, res domain.PermResource, ownerID *uuid.UUID) bool {
	return s.HasPermission(ctx, userID, res, domain.ActionRead, ownerID)
}

// CanUpdate reports whether the user may update the resource.
func (s *Service) CanUpdate(ctx context.Context, userID uuid.UUID, res domain.PermResource, ownerID *uuid.UUID) bool {
	return s.HasPermission(ctx, userID, res, domain.ActionUpdate, ownerID)
}

// CanDelete reports whether the user may delete the resource.
func (s *Service) CanDelete(ctx context.Context, userID uuid.UUID, res domain.PermResource, ownerID *uuid.UUID) bool {
	return s.HasPermission(ctx, userID, res, domain.ActionDelete, ownerID)
}
