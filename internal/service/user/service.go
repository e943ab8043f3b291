// Package user exposes read-only user lookups for the auth middleware
// and the permission engine. Users are seeded out of band (cmd/seed);
// this service never mutates them.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
	"github.com/heartmarshall/knowledgebase/internal/store"
)

// Service provides user lookups.
type Service struct {
	users store.Collection[domain.User]
	log   *slog.Logger
}

// NewService creates a user service.
func NewService(log *slog.Logger, users store.Collection[domain.User]) *Service {
	return &Service{
		users: users,
		log:   log.With("service", "user"),
	}
}

// GetByID returns the user with the given id.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByEmail returns the user with the given email (case-insensitive).
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.NewValidationError("email", "required")
	}
	u, err := s.users.FindBy(ctx, func(u domain.User) bool {
		return strings.ToLower(u.Email) == email
	})
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// IsAdmin reports whether the user exists and holds the admin role.
func (s *Service) IsAdmin(ctx context.Context, id uuid.UUID) bool {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return false
	}
	return u.Role.IsAdmin()
}

// ValidateToken resolves a bearer token to the user it names. Tokens are
// the user id itself, a stub standing in for real token verification at
// this boundary.
func (s *Service) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	id, err := uuid.Parse(strings.TrimSpace(token))
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}
