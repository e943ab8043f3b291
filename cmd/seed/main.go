// Command seed writes the stub user accounts into the record store.
// Tokens are user ids, so the printed ids double as bearer tokens for
// manual testing.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/app"
	"github.com/heartmarshall/knowledgebase/internal/config"
	"github.com/heartmarshall/knowledgebase/internal/domain"
	"github.com/heartmarshall/knowledgebase/internal/store/badgerstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := badgerstore.Open(badgerstore.Config{
		Path:           cfg.Storage.Path,
		SyncWrites:     true,
		Logger:         logger,
		GCDiscardRatio: cfg.Storage.GCDiscardRatio,
	})
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	users := badgerstore.NewCollection[domain.User](db, "users")

	seeds := []domain.User{
		{ID: uuid.New(), Name: "Admin", Email: "admin@knowledgebase.local", Role: domain.UserRoleAdmin},
		{ID: uuid.New(), Name: "Editor", Email: "editor@knowledgebase.local", Role: domain.UserRoleEditor},
		{ID: uuid.New(), Name: "Viewer", Email: "viewer@knowledgebase.local", Role: domain.UserRoleViewer},
	}

	now := time.Now()
	for _, u := range seeds {
		existing, err := users.FindBy(ctx, func(candidate domain.User) bool {
			return candidate.Email == u.Email
		})
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Error("lookup user", slog.String("email", u.Email), slog.String("error", err.Error()))
			os.Exit(1)
		}
		if existing != nil {
			logger.Info("user already seeded",
				slog.String("email", u.Email),
				slog.String("id", existing.ID.String()),
			)
			continue
		}

		u.CreatedAt = now
		u.UpdatedAt = now
		if err := users.Create(ctx, u); err != nil {
			logger.Error("create user", slog.String("email", u.Email), slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("user seeded",
			slog.String("email", u.Email),
			slog.String("role", u.Role.String()),
			slog.String("id", u.ID.String()),
		)
	}
}
