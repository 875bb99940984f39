// Package app opens the configured storage backend and builds the stores on top of it.
package app

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/mood"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/badgerstore"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/sqlstore"
	"github.com/Makepad-fr/tada/internal/todo"
)

type App struct {
	Config *config.Config
	Log    *zap.Logger
	KV     store.Backend
	Todos  *todo.Store
	Mood   *mood.Log
}

// OpenBackend opens the key-value backend named by cfg.Backend.
func OpenBackend(cfg *config.Config, log *zap.Logger) (store.Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Backend {
	case config.BackendJSON:
		return jsonstore.Open(cfg.DataDir)
	case config.BackendBadger:
		return badgerstore.Open(filepath.Join(cfg.DataDir, "badger"))
	case config.BackendSQLite:
		return sqlstore.Open(filepath.Join(cfg.DataDir, "tada.db"), log.Named("sqlstore"))
	case config.BackendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("%w: backend %q", config.ErrInvalid, cfg.Backend)
}

// Open wires everything together. Callers must Close the App.
func Open(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	kv, err := OpenBackend(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	a, err := New(cfg, log, kv)
	if err != nil {
		kv.Close()
		return nil, err
	}
	log.Debug("storage opened", zap.String("backend", cfg.Backend), zap.String("dir", cfg.DataDir))
	return a, nil
}

// New builds the stores on an already open backend.
func New(cfg *config.Config, log *zap.Logger, kv store.Backend) (*App, error) {
	policy, err := todo.ParseDeletePolicy(cfg.DeletePolicy)
	if err != nil {
		return nil, err
	}
	todos, err := todo.New(kv,
		todo.WithLogger(log.Named("todo")),
		todo.WithDeletePolicy(policy))
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}
	ml, err := mood.New(kv, mood.WithLogger(log.Named("mood")))
	if err != nil {
		return nil, fmt.Errorf("load mood log: %w", err)
	}
	return &App{Config: cfg, Log: log, KV: kv, Todos: todos, Mood: ml}, nil
}

func (a *App) Close() error {
	return a.KV.Close()
}
