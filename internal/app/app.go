package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/knowledgebase/internal/config"
	"github.com/heartmarshall/knowledgebase/internal/domain"
	"github.com/heartmarshall/knowledgebase/internal/service/permission"
	"github.com/heartmarshall/knowledgebase/internal/service/topic"
	"github.com/heartmarshall/knowledgebase/internal/service/user"
	"github.com/heartmarshall/knowledgebase/internal/store/badgerstore"
	"github.com/heartmarshall/knowledgebase/internal/transport/middleware"
	"github.com/heartmarshall/knowledgebase/internal/transport/rest"
)

// Run is the application entry point: load configuration, open the
// record store, wire services and transport, and serve HTTP until ctx
// is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := NewLogger(cfg.Log)
	log.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("ephemeral_storage", cfg.Storage.Ephemeral),
	)

	db, err := openStore(cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("close store", slog.Any("error", err))
		}
	}()

	topics := badgerstore.NewCollection[domain.Topic](db, "topics")
	versions := badgerstore.NewCollection[domain.TopicVersion](db, "topic_versions")
	users := badgerstore.NewCollection[domain.User](db, "users")

	userSvc := user.NewService(log, users)
	permSvc := permission.NewService(log, users)
	topicSvc := topic.NewService(log, topics, versions)

	topicHandler := rest.NewTopicHandler(topicSvc, permSvc, log)
	healthHandler := rest.NewHealthHandler(db, BuildVersion())

	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.CORS),
	}
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.MaxPerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.RateLimit.MaxPerMinute))
	}
	mws = append(mws, middleware.Auth(userSvc))

	handler := middleware.Chain(mws...)(rest.NewRouter(topicHandler, healthHandler))

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(cfg config.StorageConfig, log *slog.Logger) (*badgerstore.DB, error) {
	if cfg.Ephemeral {
		c := badgerstore.InMemoryConfig()
		c.Logger = log
		return badgerstore.Open(c)
	}
	return badgerstore.Open(badgerstore.Config{
		Path:           cfg.Path,
		SyncWrites:     cfg.SyncWrites,
		Logger:         log,
		GCInterval:     cfg.GCInterval,
		GCDiscardRatio: cfg.GCDiscardRatio,
	})
}
