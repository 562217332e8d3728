package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	applog "github.com/meheraj786/fortunate-business-management-sub001/internal/log"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/store/memory"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger   *applog.Logger
	location *time.Location
}

// NewFactory creates a new backend factory. loc decides which day the demo
// seed treats as today.
func NewFactory(logger *applog.Logger, loc *time.Location) *DefaultFactory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if loc == nil {
		loc = time.Local
	}
	return &DefaultFactory{
		logger:   logger.WithComponent(applog.ComponentStorage),
		location: loc,
	}
}

// Create implements Factory.Create
func (f *DefaultFactory) Create(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLite:
		return f.createSQLite(config)
	case Memory:
		return f.createMemory(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLite(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &Result{
		Store:   repo,
		Ping:    repo.Ping,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemory(config Config) (*Result, error) {
	seed, err := memory.LoadSeed(config.SeedFile, core.Today(f.location))
	if err != nil {
		return nil, fmt.Errorf("failed to load seed: %w", err)
	}

	f.logger.Info("Initialized memory backend",
		"seed_file", config.SeedFile,
		"expenses", len(seed.Expenses),
		"sales", len(seed.Sales),
		"team", len(seed.Team))

	return &Result{
		Store: memory.NewFromSeed(seed),
		Ping:  func(context.Context) error { return nil },
	}, nil
}
