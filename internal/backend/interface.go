package backend

import (
	"context"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/ports"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains the store instance, a readiness probe and an optional
// cleanup function.
type Result struct {
	Store   ports.Store
	Ping    func(ctx context.Context) error
	Cleanup CleanupFunc
}

// Close runs Cleanup when one is set.
func (r *Result) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates stores based on configuration
type Factory interface {
	Create(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for store creation
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Memory specific; empty means the built-in demo data.
	SeedFile string
}

// Type names a record store implementation.
type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory:
		return true
	default:
		return false
	}
}
