// Package badgerstore implements the record store on BadgerDB: an
// embedded, file-backed key/value store. Collections live under key
// prefixes ("topics/<id>") with JSON-encoded values, so every read
// decodes a fresh copy and never aliases stored state.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// Config holds settings for the underlying BadgerDB instance.
type Config struct {
	// Path is the directory for database files. Required unless InMemory.
	Path string

	// InMemory disables disk persistence. Used by tests.
	InMemory bool

	// SyncWrites makes every write durable before returning.
	SyncWrites bool

	// Logger receives BadgerDB's internal log output. Nil disables it.
	Logger *slog.Logger

	// GCInterval is how often value-log garbage collection runs.
	// Zero disables GC.
	GCInterval time.Duration

	// GCDiscardRatio is the minimum garbage ratio that triggers a GC pass.
	GCDiscardRatio float64
}

// DefaultConfig returns production defaults: durable writes, GC every
// five minutes once half the value log is garbage.
func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		SyncWrites:     true,
		GCInterval:     5 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig returns settings for tests: no disk, no sync, no GC.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// DB wraps a BadgerDB instance together with its GC loop.
type DB struct {
	db     *badger.DB
	log    *slog.Logger
	cfg    Config
	stopGC chan struct{}
	doneGC chan struct{}
}

// Open opens (and if needed creates) the database described by cfg and
// starts the GC loop when configured.
func Open(cfg Config) (*DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badgerstore: path is required for persistent storage")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("badgerstore: create directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{log: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	raw, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: open: %w", err)
	}

	d := &DB{db: raw, log: cfg.Logger, cfg: cfg}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		d.stopGC = make(chan struct{})
		d.doneGC = make(chan struct{})
		go d.runGC()
	}
	return d, nil
}

// Close stops the GC loop and closes the database.
func (d *DB) Close() error {
	if d.stopGC != nil {
		close(d.stopGC)
		<-d.doneGC
	}
	return d.db.Close()
}

// Ping reports whether the database is usable. Served to health checks.
func (d *DB) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.db.IsClosed() {
		return errors.New("badgerstore: database is closed")
	}
	return nil
}

func (d *DB) runGC() {
	defer close(d.doneGC)
	ticker := time.NewTicker(d.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopGC:
			return
		case <-ticker.C:
			// RunValueLogGC reclaims at most one log file per call; loop
			// until it reports nothing left to collect.
			for {
				err := d.db.RunValueLogGC(d.cfg.GCDiscardRatio)
				if err != nil {
					if !errors.Is(err, badger.ErrNoRewrite) && d.log != nil {
						d.log.Warn("value log gc failed", slog.Any("error", err))
					}
					break
				}
			}
		}
	}
}

// badgerLogger adapts slog to BadgerDB's logger interface.
type badgerLogger struct {
	log *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}
