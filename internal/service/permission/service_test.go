package permission

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
	"github.com/heartmarshall/knowledgebase/internal/store/memstore"
)

// seedUser inserts a user with the given role and returns its id.
func seedUser(t *testing.T, users *memstore.Collection[domain.User], role domain.UserRole) uuid.UUID {
	t.Helper()
	u := domain.User{ID: uuid.New(), Name: string(role), Email: string(role) + "@example.com", Role: role}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u.ID
}

func newTestService(t *testing.T) (*Service, *memstore.Collection[domain.User]) {
	t.Helper()
	users := memstore.NewCollection[domain.User]()
	return NewService(slog.Default(), users), users
}

func TestHasPermission_RoleMatrix(t *testing.T) {
	t.Parallel()

	svc, users := newTestService(t)
	ctx := context.Background()

	admin := seedUser(t, users, domain.UserRoleAdmin)
	editor := seedUser(t, users, domain.UserRoleEditor)
	viewer := seedUser(t, users, domain.UserRoleViewer)

	tests := []struct {
		name   string
		user   uuid.UUID
		res    domain.PermResource
		action domain.Action
		want   bool
	}{
		{"admin topic delete", admin, domain.PermResourceTopic, domain.ActionDelete, true},
		{"admin system update", admin, domain.PermResourceSystem, domain.ActionUpdate, true},
		{"admin user create", admin, domain.PermResourceUser, domain.ActionCreate, true},

		{"editor topic create", editor, domain.PermResourceTopic, domain.ActionCreate, true},
		{"editor topic read", editor, domain.PermResourceTopic, domain.ActionRead, true},
		{"editor topic update", editor, domain.PermResourceTopic, domain.ActionUpdate, true},
		{"editor topic delete", editor, domain.PermResourceTopic, domain.ActionDelete, false},
		{"editor user read", editor, domain.PermResourceUser, domain.ActionRead, true},
		{"editor user update", editor, domain.PermResourceUser, domain.ActionUpdate, false},
		{"editor system read", editor, domain.PermResourceSystem, domain.ActionRead, false},

		{"viewer topic read", viewer, domain.PermResourceTopic, domain.ActionRead, true},
		{"viewer topic create", viewer, domain.PermResourceTopic, domain.ActionCreate, false},
		{"viewer topic update", viewer, domain.PermResourceTopic, domain.ActionUpdate, false},
		{"viewer topic delete", viewer, domain.PermResourceTopic, domain.ActionDelete, false},
		{"viewer user read", viewer, domain.PermResourceUser, domain.ActionRead, false},
		{"viewer system delete", viewer, domain.PermResourceSystem, domain.ActionDelete, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.HasPermission(ctx, tt.user, tt.res, tt.action, nil); got != tt.want {
				t.Errorf("HasPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasPermission_OwnershipOverride(t *testing.T) {
	t.Parallel()

	svc, users := newTestService(t)
	ctx := context.Background()

	viewer := seedUser(t, users, domain.UserRoleViewer)
	stranger := uuid.New()

	// A viewer updating their own topic is granted.
	if !svc.HasPermission(ctx, viewer, domain.PermResourceTopic, domain.ActionUpdate, &viewer) {
		t.Error("owner should be granted regardless of role ceiling")
	}
	// The same viewer updating someone else's topic is denied.
	if svc.HasPermission(ctx, viewer, domain.PermResourceTopic, domain.ActionUpdate, &stranger) {
		t.Error("non-owner viewer should be denied update")
	}
	// Ownership even overrides delete for a viewer.
	if !svc.HasPermission(ctx, viewer, domain.PermResourceTopic, domain.ActionDelete, &viewer) {
		t.Error("owner should be granted delete on their own topic")
	}
}

func TestHasPermission_FailClosed(t *testing.T) {
	t.Parallel()

	svc, users := newTestService(t)
	ctx := context.Background()

	// Unknown user.
	if svc.HasPermission(ctx, uuid.New(), domain.PermResourceTopic, domain.ActionRead, nil) {
		t.Error("unknown user should be denied")
	}

	// Known user with a role that has no rule.
	odd := domain.User{ID: uuid.New(), Name: "odd", Email: "odd@example.com", Role: domain.UserRole("superuser")}
	if err := users.Create(ctx, odd); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if svc.HasPermission(ctx, odd.ID, domain.PermResourceTopic, domain.ActionRead, nil) {
		t.Error("unrecognized role should be denied")
	}
}

func TestConvenienceWrappers(t *testing.T) {
	t.Parallel()

	svc, users := newTestService(t)
	ctx := context.Background()
	editor := seedUser(t, users, domain.UserRoleEditor)

	if !svc.CanCreate(ctx, editor, domain.PermResourceTopic) {
		t.Error("editor should be able to create topics")
	}
	if !svc.CanRead(ctx, editor, domain.PermResourceTopic, nil) {
		t.Error("editor should be able to read topics")
	}
	if !svc.CanUpdate(ctx, editor, domain.PermResourceTopic, nil) {
		t.Error("editor should be able to update topics")
	}
	if svc.CanDelete(ctx, editor, domain.PermResourceTopic, nil) {
		t.Error("editor should not be able to delete topics")
	}
}
